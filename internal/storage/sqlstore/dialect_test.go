package sqlstore

import "testing"

func TestDialect_Rebind(t *testing.T) {
	query := "SELECT id FROM placement WHERE unit_id = ? AND start_date <= ? AND end_date >= ?"

	if got := SQLite.Rebind(query); got != query {
		t.Errorf("SQLite.Rebind() changed the query: %q", got)
	}

	want := "SELECT id FROM placement WHERE unit_id = $1 AND start_date <= $2 AND end_date >= $3"
	if got := Postgres.Rebind(query); got != want {
		t.Errorf("Postgres.Rebind() = %q, want %q", got, want)
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tt := range tests {
		if got := placeholders(tt.n); got != tt.want {
			t.Errorf("placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestWeekdaysCodec(t *testing.T) {
	encoded := encodeWeekdays([]int{1, 2, 3, 6})
	if encoded != "1,2,3,6" {
		t.Errorf("encodeWeekdays() = %q", encoded)
	}
	decoded, err := decodeWeekdays(encoded)
	if err != nil || len(decoded) != 4 || decoded[3] != 6 {
		t.Errorf("decodeWeekdays() = %v (err=%v)", decoded, err)
	}
	if _, err := decodeWeekdays("1,8"); err == nil {
		t.Error("Expected error for weekday 8")
	}
	if empty, err := decodeWeekdays(""); err != nil || len(empty) != 0 {
		t.Errorf("Expected no weekdays, got %v (err=%v)", empty, err)
	}
}

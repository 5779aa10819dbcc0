package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/julianstephens/attendo/internal/period"
	"github.com/julianstephens/attendo/internal/storage"
	"github.com/julianstephens/attendo/internal/storage/postgres"
	"github.com/julianstephens/attendo/internal/storage/sqlite"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		input    string
		expected []int
		wantErr  bool
	}{
		{"", nil, false},
		{"mon,wed,fri", []int{1, 3, 5}, false},
		{"Saturday, sun", []int{6, 7}, false},
		{"1,7", []int{1, 7}, false},
		{"0", nil, true},
		{"someday", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseWeekdays(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWeekdays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("ParseWeekdays(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("2024-03-04", "")
	if err != nil {
		t.Fatalf("ParseRange() failed: %v", err)
	}
	if r != period.SingleDay(period.MustParseDate("2024-03-04")) {
		t.Errorf("Expected single day range, got %s", r)
	}

	if _, err := ParseRange("2024-03-08", "2024-03-04"); err == nil {
		t.Error("Expected error for reversed range")
	}
	if _, err := ParseRange("March 4", ""); err == nil {
		t.Error("Expected error for malformed date")
	}
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenStore(filepath.Join(dir, "attendo.json"), false)
	if err != nil {
		t.Fatalf("OpenStore(json) failed: %v", err)
	}
	if _, ok := store.(*storage.JSONStore); !ok {
		t.Errorf("Expected JSONStore, got %T", store)
	}

	store, err = OpenStore(filepath.Join(dir, "attendo.db"), false)
	if err != nil {
		t.Fatalf("OpenStore(sqlite) failed: %v", err)
	}
	if _, ok := store.(*sqlite.Store); !ok {
		t.Errorf("Expected sqlite Store, got %T", store)
	}

	store, err = OpenStore("postgres://attendo@localhost:5432/attendo", false)
	if err != nil {
		t.Fatalf("OpenStore(postgres) failed: %v", err)
	}
	if _, ok := store.(*postgres.Store); !ok {
		t.Errorf("Expected postgres Store, got %T", store)
	}

	if _, err := OpenStore("host=localhost user=attendo password=secret", false); err == nil {
		t.Error("Expected embedded credentials to be rejected")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.config/attendo/attendo.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".config/attendo/attendo.db"); got != want {
		t.Errorf("ExpandHome() = %q, want %q", got, want)
	}
	if got, _ := ExpandHome("/var/lib/attendo.db"); got != "/var/lib/attendo.db" {
		t.Errorf("Expected absolute path unchanged, got %q", got)
	}
}

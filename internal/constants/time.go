package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MidnightTime is the time-of-day literal that means "end of day" in stored data.
	// It is never accepted as a reservation end entered by a user.
	MidnightTime = "00:00"

	// MaxDailyEntries caps reservations and attendances per child per day.
	MaxDailyEntries = 2
)

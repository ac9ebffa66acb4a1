package domain

// AllMastersID sentinel master id used for slots blocked for every master
const AllMastersID = "ALL"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default policy values
const (
	DefaultMinLeadDays = 1 // same-day booking is not allowed
	DefaultTimezone    = "Asia/Ho_Chi_Minh"
)

// Range limits for calendar queries
const (
	MaxCalendarRangeDays = 62
)

package utils

import (
	"fmt"
	"regexp"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateDate validates a calendar date in YYYY-MM-DD form
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date, expected YYYY-MM-DD: %s", date)
	}
	return nil
}

// ValidateMonth validates a calendar month in YYYY-MM form
func ValidateMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("invalid month, expected YYYY-MM: %s", month)
	}
	return nil
}

// ValidateTimeOfDay validates a wall-clock time in HH:MM form
func ValidateTimeOfDay(t string) error {
	if _, err := time.Parse("15:04", t); err != nil {
		return fmt.Errorf("invalid time, expected HH:MM: %s", t)
	}
	return nil
}

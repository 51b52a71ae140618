package entity

import "time"

// SafetyBriefing records one toolbox-meeting / safety briefing session.
type SafetyBriefing struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Topic     string    `json:"topic"`
	Conductor string    `json:"conductor"`
	Attendees []string  `json:"attendees"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

package entity

import "time"

// SarprasItem is one asset in the facility inventory (sarana prasarana).
type SarprasItem struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Condition       string    `json:"status"`
	LastMaintenance string    `json:"last_maintenance"` // YYYY-MM-DD
	Location        string    `json:"location"`
	CreatedAt       time.Time `json:"created_at"`
}

package entity

import "time"

// OvertimeRecord is a single overtime claim. Unlike leave permits, overtime
// records may be edited and deleted by an admin.
type OvertimeRecord struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Date         string    `json:"date"` // YYYY-MM-DD
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Duration     float64   `json:"duration"` // hours
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

package entity

// AttendanceRecord is one attendance entry per employee per calendar day.
// The leave-permit workflow reads it only to gate submission; it never
// mutates attendance.
type AttendanceRecord struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"` // YYYY-MM-DD
	Status       string `json:"status"`
	ClockIn      string `json:"clock_in"`
	ClockOut     string `json:"clock_out"`
	LeaveOut     string `json:"leave_out"`
	ReturnIn     string `json:"return_in"`
	Notes        string `json:"notes"`
}

// HasClockedIn reports whether the record proves the employee clocked in that
// day. Absent records do not qualify.
func (r *AttendanceRecord) HasClockedIn() bool {
	switch r.Status {
	case AttendanceStatusPresent, AttendanceStatusClockedOut, AttendanceStatusOnLeave:
		return true
	}
	return false
}

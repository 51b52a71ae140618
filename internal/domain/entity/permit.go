package entity

import "time"

// LeavePermit represents a single leave-request record and its lifecycle state.
// Permits are created at Pending and are never deleted; all later changes are
// status transitions recorded by the workflow.
type LeavePermit struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	Date           string `json:"date"`       // calendar day of leave, YYYY-MM-DD
	LeaveTime      string `json:"leave_time"` // requested departure time, HH:MM
	Purpose        string `json:"purpose"`
	SecurityOnDuty string `json:"security_on_duty"`
	Status         string `json:"status"`

	// Set when an admin decides (Approved / Rejected / Butuh Klarifikasi).
	ApprovedBy string `json:"approved_by,omitempty"`

	// Set together, exactly once, on the Approved -> On Leave transition.
	SecurityOutSignature string `json:"security_out_signature,omitempty"`
	ActualLeaveTime      string `json:"actual_leave_time,omitempty"`

	// Set exactly once, on the On Leave -> Returned transition.
	ActualReturnTime string `json:"actual_return_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// IsFinalized reports whether the permit has passed the approval decision and
// may be rendered to a printable form.
func (p *LeavePermit) IsFinalized() bool {
	switch p.Status {
	case PermitStatusApproved, PermitStatusOnLeave, PermitStatusReturned:
		return true
	}
	return false
}

package entity

import (
	"testing"
	"time"
)

// oneOfEach builds a fixture with exactly one permit in every status.
func oneOfEach() []*LeavePermit {
	statuses := []string{
		PermitStatusPending,
		PermitStatusApproved,
		PermitStatusRejected,
		PermitStatusOnLeave,
		PermitStatusReturned,
		PermitStatusNeedsClarification,
	}

	permits := make([]*LeavePermit, 0, len(statuses))
	for i, s := range statuses {
		permits = append(permits, &LeavePermit{
			ID:         s,
			EmployeeID: "emp-1",
			Date:       "2024-06-15",
			Status:     s,
			CreatedAt:  time.Date(2024, 6, 15, 8, i, 0, 0, time.UTC),
		})
	}
	return permits
}

func statusSet(permits []*LeavePermit) map[string]bool {
	set := make(map[string]bool, len(permits))
	for _, p := range permits {
		set[p.Status] = true
	}
	return set
}

func TestAdminQueue(t *testing.T) {
	queue := AdminQueue(oneOfEach())

	if len(queue) != 2 {
		t.Fatalf("AdminQueue length = %d, want 2", len(queue))
	}
	got := statusSet(queue)
	if !got[PermitStatusPending] || !got[PermitStatusNeedsClarification] {
		t.Errorf("AdminQueue statuses = %v, want Pending and Butuh Klarifikasi", got)
	}
}

func TestSecurityOutQueue(t *testing.T) {
	queue := SecurityOutQueue(oneOfEach())

	if len(queue) != 1 {
		t.Fatalf("SecurityOutQueue length = %d, want 1", len(queue))
	}
	if queue[0].Status != PermitStatusApproved {
		t.Errorf("SecurityOutQueue status = %s, want Approved", queue[0].Status)
	}
}

func TestSecurityReturnQueue(t *testing.T) {
	queue := SecurityReturnQueue(oneOfEach())

	if len(queue) != 1 {
		t.Fatalf("SecurityReturnQueue length = %d, want 1", len(queue))
	}
	if queue[0].Status != PermitStatusOnLeave {
		t.Errorf("SecurityReturnQueue status = %s, want On Leave", queue[0].Status)
	}
}

func TestEmployeePermits(t *testing.T) {
	permits := oneOfEach()
	permits = append(permits, &LeavePermit{ID: "other", EmployeeID: "emp-2", Status: PermitStatusPending})

	mine := EmployeePermits(permits, "emp-1")
	if len(mine) != 6 {
		t.Errorf("EmployeePermits length = %d, want 6", len(mine))
	}
	for _, p := range mine {
		if p.EmployeeID != "emp-1" {
			t.Errorf("EmployeePermits returned permit for %s", p.EmployeeID)
		}
	}
}

func TestMonthlyRecap(t *testing.T) {
	permits := []*LeavePermit{
		{ID: "a", Date: "2024-06-01", CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "b", Date: "2024-06-20", CreatedAt: time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)},
		{ID: "c", Date: "2024-07-01", CreatedAt: time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)},
	}

	recap := MonthlyRecap(permits, "2024-06")
	if len(recap) != 2 {
		t.Fatalf("MonthlyRecap length = %d, want 2", len(recap))
	}
	// Newest creation first.
	if recap[0].ID != "b" || recap[1].ID != "a" {
		t.Errorf("MonthlyRecap order = [%s %s], want [b a]", recap[0].ID, recap[1].ID)
	}
}

func TestAttendanceHasClockedIn(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{AttendanceStatusPresent, true},
		{AttendanceStatusClockedOut, true},
		{AttendanceStatusOnLeave, true},
		{AttendanceStatusAbsent, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			rec := &AttendanceRecord{Status: tt.status}
			if got := rec.HasClockedIn(); got != tt.expected {
				t.Errorf("HasClockedIn() = %v, want %v", got, tt.expected)
			}
		})
	}
}

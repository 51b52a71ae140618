package entity

import "sort"

// Queue derivation is a pure function of the full permit snapshot. The views
// below mirror the role-partitioned queues each portal surface renders, so
// membership can be tested deterministically against a fixture list.

// AdminQueue returns permits awaiting an admin decision.
func AdminQueue(permits []*LeavePermit) []*LeavePermit {
	return filterPermits(permits, func(p *LeavePermit) bool {
		return p.Status == PermitStatusPending || p.Status == PermitStatusNeedsClarification
	})
}

// SecurityOutQueue returns approved permits waiting for security sign-out.
func SecurityOutQueue(permits []*LeavePermit) []*LeavePermit {
	return filterPermits(permits, func(p *LeavePermit) bool {
		return p.Status == PermitStatusApproved
	})
}

// SecurityReturnQueue returns permits whose holder is currently off premises.
func SecurityReturnQueue(permits []*LeavePermit) []*LeavePermit {
	return filterPermits(permits, func(p *LeavePermit) bool {
		return p.Status == PermitStatusOnLeave
	})
}

// EmployeePermits returns the requester's own permits.
func EmployeePermits(permits []*LeavePermit, employeeID string) []*LeavePermit {
	return filterPermits(permits, func(p *LeavePermit) bool {
		return p.EmployeeID == employeeID
	})
}

// MonthlyRecap returns permits whose date falls in the given month,
// newest-created first. Month is formatted as YYYY-MM.
func MonthlyRecap(permits []*LeavePermit, month string) []*LeavePermit {
	recap := filterPermits(permits, func(p *LeavePermit) bool {
		return len(p.Date) >= len(month) && p.Date[:len(month)] == month
	})
	sort.SliceStable(recap, func(i, j int) bool {
		return recap[i].CreatedAt.After(recap[j].CreatedAt)
	})
	return recap
}

func filterPermits(permits []*LeavePermit, keep func(*LeavePermit) bool) []*LeavePermit {
	out := make([]*LeavePermit, 0, len(permits))
	for _, p := range permits {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

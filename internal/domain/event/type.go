package event

// Type identifies the type of domain event.
type Type string

const (
	// Collection-changed events drive the live-query views. One type per
	// stored collection; the payload names the document that changed.
	TypePermitChanged     Type = "permits.changed"
	TypeAttendanceChanged Type = "attendance.changed"
	TypeGuestChanged      Type = "guests.changed"
	TypeOvertimeChanged   Type = "overtime.changed"
	TypeWasteChanged      Type = "waste.changed"
	TypeSarprasChanged    Type = "sarpras.changed"
	TypeBriefingChanged   Type = "briefings.changed"
	TypeUserChanged       Type = "users.changed"

	// TypeWriteFailed carries the diagnostic for a detached write that
	// failed after the caller already moved on.
	TypeWriteFailed Type = "write.failed"
)

// Operation kinds recorded on a write-failure event.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// AllTypes lists every defined event type, in declaration order.
func AllTypes() []Type {
	return []Type{
		TypePermitChanged,
		TypeAttendanceChanged,
		TypeGuestChanged,
		TypeOvertimeChanged,
		TypeWasteChanged,
		TypeSarprasChanged,
		TypeBriefingChanged,
		TypeUserChanged,
		TypeWriteFailed,
	}
}

// String returns the string representation of the event type.
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants.
func (t Type) IsValid() bool {
	switch t {
	case TypePermitChanged,
		TypeAttendanceChanged,
		TypeGuestChanged,
		TypeOvertimeChanged,
		TypeWasteChanged,
		TypeSarprasChanged,
		TypeBriefingChanged,
		TypeUserChanged,
		TypeWriteFailed:
		return true
	default:
		return false
	}
}

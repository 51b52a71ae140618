package workflow

// State is a leave-permit lifecycle state. The string values are stored
// verbatim in the leave_permits table and shown on the portal surfaces.
type State string

const (
	StatePending            State = "Pending"
	StateApproved           State = "Approved"
	StateRejected           State = "Rejected"
	StateOnLeave            State = "On Leave"
	StateReturned           State = "Returned"
	StateNeedsClarification State = "Butuh Klarifikasi"
)

var validStates = map[State]bool{
	StatePending:            true,
	StateApproved:           true,
	StateRejected:           true,
	StateOnLeave:            true,
	StateReturned:           true,
	StateNeedsClarification: true,
}

// Rejected and Returned end the lifecycle; Butuh Klarifikasi does not, an
// admin can still move the permit to Approved or Rejected.
var terminalStates = map[State]bool{
	StateRejected: true,
	StateReturned: true,
}

// IsTerminal returns true if no further transitions are allowed from s.
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// IsValid returns true if s is a known lifecycle state.
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the stored string form of the state.
func (s State) String() string {
	return string(s)
}

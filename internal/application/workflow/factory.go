package workflow

import (
	domainwf "github.com/awahyudi/facility-portal/internal/domain/workflow"
)

// BuildLeavePermitMachine creates a state machine configured with the
// leave-permit transition table:
//
//	Pending            --APPROVE-->        Approved
//	Pending            --REJECT-->         Rejected
//	Pending            --CLARIFY-->        Butuh Klarifikasi
//	Butuh Klarifikasi  --APPROVE/REJECT/CLARIFY--> same three targets
//	Approved           --SIGN_OUT-->       On Leave
//	On Leave           --CONFIRM_RETURN--> Returned
//
// Rejected and Returned are terminal. No transition may skip a step: a
// permit can only reach On Leave through Approved, and Returned through
// On Leave.
func BuildLeavePermitMachine(initial domainwf.State) domainwf.Machine {
	builder := domainwf.NewBuilder()

	builder.Configure(domainwf.StatePending).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved).
		Permit(domainwf.TriggerReject, domainwf.StateRejected).
		Permit(domainwf.TriggerClarify, domainwf.StateNeedsClarification)

	// A clarification round reopens all three admin decisions. Clarify is
	// permitted again so a second admin note keeps the permit parked here.
	builder.Configure(domainwf.StateNeedsClarification).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved).
		Permit(domainwf.TriggerReject, domainwf.StateRejected).
		Permit(domainwf.TriggerClarify, domainwf.StateNeedsClarification)

	builder.Configure(domainwf.StateApproved).
		Permit(domainwf.TriggerSignOut, domainwf.StateOnLeave)

	builder.Configure(domainwf.StateOnLeave).
		Permit(domainwf.TriggerConfirmReturn, domainwf.StateReturned)

	// Rejected and Returned have no outgoing transitions.

	return builder.Build(initial)
}

package workflow

// Trigger is an action that may cause a lifecycle transition.
type Trigger string

const (
	// Admin decisions on a pending (or clarification) permit.
	TriggerApprove Trigger = "APPROVE"
	TriggerReject  Trigger = "REJECT"
	TriggerClarify Trigger = "CLARIFY"

	// Security desk actions.
	TriggerSignOut       Trigger = "SIGN_OUT"
	TriggerConfirmReturn Trigger = "CONFIRM_RETURN"
)

// String returns the string representation of the trigger.
func (t Trigger) String() string {
	return string(t)
}

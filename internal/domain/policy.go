package domain

// Action is an operation subject to the access policy.
type Action int

const (
	// ActionManageEvent covers creating, editing, and deleting an event and
	// its activities, including the check-in toggle.
	ActionManageEvent Action = iota
	// ActionDecideSubmission covers approving or rejecting a submission
	// targeting the event.
	ActionDecideSubmission
	// ActionCreateSubmission covers submitting a work to an event.
	ActionCreateSubmission
	// ActionRegister, ActionCancelRegistration, and ActionCheckIn are
	// self-service participant operations.
	ActionRegister
	ActionCancelRegistration
	ActionCheckIn
	// ActionManageGroup covers academic-group membership management.
	ActionManageGroup
)

// Resource describes the target of an action for policy evaluation.
type Resource struct {
	// EventOwnerID is the organizer of the event the action targets, if any.
	EventOwnerID string
	// SubjectUserID is the user on whose behalf the action is performed.
	SubjectUserID string
	// SubmissionWindowOpen reports whether the target event currently accepts
	// submissions.
	SubmissionWindowOpen bool
}

// Allow evaluates the access policy rules in fixed order; the first matching
// rule wins and the default is deny.
func Allow(actor *User, action Action, res Resource) bool {
	if actor == nil {
		return false
	}
	// 1. An organizer who owns the event manages it and decides its
	// submissions.
	if actor.Role == RoleOrganizer && res.EventOwnerID == actor.ID {
		if action == ActionManageEvent || action == ActionDecideSubmission {
			return true
		}
	}
	// 2. Speakers may submit to any event with an open submission window.
	if actor.Role == RoleSpeaker && action == ActionCreateSubmission {
		return res.SubmissionWindowOpen
	}
	// 3. Any authenticated user acts for themselves only.
	if action == ActionRegister || action == ActionCancelRegistration || action == ActionCheckIn {
		return res.SubjectUserID == actor.ID
	}
	// 4. Professors manage academic-group membership.
	if actor.Role == RoleProfessor && action == ActionManageGroup {
		return true
	}
	// 5. Default deny.
	return false
}

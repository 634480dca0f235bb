package domain

import (
	"time"

	"github.com/google/uuid"
)

type MembershipStatus string

const (
	MembershipRegisteredOwner    MembershipStatus = "registered_owner"
	MembershipAuthorizedAssignee MembershipStatus = "authorized_assignee"
)

type Attendance string

const (
	AttendanceYes       Attendance = "yes"
	AttendanceProxy     Attendance = "proxy"
	AttendanceUndecided Attendance = "undecided"
)

// EligibilityRecord is the one-time pre-vote registration of a voter.
// It is written only once the full dialog completes through the final
// declaration; there is no update path afterwards.
type EligibilityRecord struct {
	ID               uuid.UUID        `json:"id"`
	VoterID          VoterID          `json:"voter_id"`
	FullName         string           `json:"full_name"`
	Address          string           `json:"address"`
	Mobile           string           `json:"mobile"`
	Email            string           `json:"email"`
	MembershipStatus MembershipStatus `json:"membership_status"`
	Attendance       Attendance       `json:"attendance"`
	WishesToNominate bool             `json:"wishes_to_nominate"`
	NomineeNames     string           `json:"nominee_names"`
	Declared         bool             `json:"declared"`
	SubmittedAt      time.Time        `json:"submitted_at"`
}

// RegistrationStep is a step in the eligibility dialog. Steps advance
// linearly except that a "no" nomination decision skips StepNomineeNames.
type RegistrationStep int

const (
	StepFullName RegistrationStep = iota
	StepAddress
	StepMobile
	StepEmail
	StepMembershipStatus
	StepAttendance
	StepNominationDecision
	StepNomineeNames
	StepDeclaration
	StepDone
)

// StepOption is one selectable value of a choice step.
type StepOption struct {
	Label string
	Value string
}

func (s RegistrationStep) Key() string {
	switch s {
	case StepFullName:
		return "full_name"
	case StepAddress:
		return "address"
	case StepMobile:
		return "mobile"
	case StepEmail:
		return "email"
	case StepMembershipStatus:
		return "membership_status"
	case StepAttendance:
		return "attendance"
	case StepNominationDecision:
		return "nominate"
	case StepNomineeNames:
		return "nominee_names"
	case StepDeclaration:
		return "declaration"
	default:
		return "done"
	}
}

// StepByKey resolves the payload key of a choice or free-text step.
func StepByKey(key string) (RegistrationStep, bool) {
	for s := StepFullName; s <= StepDeclaration; s++ {
		if s.Key() == key {
			return s, true
		}
	}
	return StepDone, false
}

func (s RegistrationStep) Prompt() string {
	switch s {
	case StepFullName:
		return "Pre-vote registration.\n\nPlease enter your FULL NAME:"
	case StepAddress:
		return "Please enter your ADDRESS (block/lot/street):"
	case StepMobile:
		return "Please enter your MOBILE NUMBER:"
	case StepEmail:
		return "Please enter your EMAIL ADDRESS:"
	case StepMembershipStatus:
		return "Are you a registered owner or an authorized assignee?"
	case StepAttendance:
		return "Will you attend the Special Assembly?"
	case StepNominationDecision:
		return "Do you wish to nominate candidates for the Board?"
	case StepNomineeNames:
		return "Please enter the names of your nominees:"
	case StepDeclaration:
		return "I declare that the information I provided is true and correct, and that I am authorized to vote on behalf of this property."
	default:
		return "✅ Your pre-vote registration has been recorded. Thank you."
	}
}

// Options returns the fixed choice set of a choice step, or nil for
// free-text steps.
func (s RegistrationStep) Options() []StepOption {
	switch s {
	case StepMembershipStatus:
		return []StepOption{
			{Label: "Registered Owner", Value: string(MembershipRegisteredOwner)},
			{Label: "Authorized Assignee", Value: string(MembershipAuthorizedAssignee)},
		}
	case StepAttendance:
		return []StepOption{
			{Label: "Yes, in person", Value: string(AttendanceYes)},
			{Label: "By proxy", Value: string(AttendanceProxy)},
			{Label: "Undecided", Value: string(AttendanceUndecided)},
		}
	case StepNominationDecision:
		return []StepOption{
			{Label: "Yes", Value: "yes"},
			{Label: "No", Value: "no"},
		}
	case StepDeclaration:
		return []StepOption{
			{Label: "I Agree", Value: "agree"},
		}
	default:
		return nil
	}
}

// FreeText reports whether the step accepts arbitrary text input.
func (s RegistrationStep) FreeText() bool {
	switch s {
	case StepFullName, StepAddress, StepMobile, StepEmail, StepNomineeNames:
		return true
	default:
		return false
	}
}

func (s RegistrationStep) ValidOption(value string) bool {
	for _, opt := range s.Options() {
		if opt.Value == value {
			return true
		}
	}
	return false
}

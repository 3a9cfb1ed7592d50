package leave

import (
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/user"
)

const (
	StatusApplied          = "applied"
	StatusManagerApproved  = "manager-approved"
	StatusHRApproved       = "hr-approved"
	StatusDirectorApproved = "director-approved"
	StatusRejected         = "rejected"
)

const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

const (
	LeaveTypeCasual    = "casual"
	LeaveTypeSick      = "sick"
	LeaveTypeEarned    = "earned"
	LeaveTypeMaternity = "maternity"
	LeaveTypeOther     = "other"
)

const directorAutoApproveComment = "Auto-approved for director"

// InitialStatus seeds a new request's status from the applicant's role.
// Director requests start fully approved; manager and HR requests start at
// applied and route straight to the director.
func InitialStatus(actorRole string) string {
	if actorRole == user.RoleDirector {
		return StatusDirectorApproved
	}
	return StatusApplied
}

// IsTerminal reports whether no further decision can be taken.
func IsTerminal(status string) bool {
	return status == StatusDirectorApproved || status == StatusRejected
}

// Transition computes the next status for a decision by actorRole on a
// request owned by a user with employeeRole, currently in currentStatus.
//
// The same preconditions gate approve and reject; only the resulting status
// differs. The two failure modes stay distinct: ErrNotAuthorized when the
// actor's role can never touch this request, ErrInvalidStatus when the role
// has authority but the request is not at that role's step.
func Transition(actorRole, employeeRole, currentStatus string) (string, error) {
	switch actorRole {
	case user.RoleManager:
		if employeeRole != user.RoleEmployee {
			return "", leaveerrors.ErrNotAuthorized
		}
		if currentStatus != StatusApplied {
			return "", leaveerrors.ErrInvalidStatus
		}
		return StatusManagerApproved, nil

	case user.RoleHR:
		if employeeRole != user.RoleEmployee {
			return "", leaveerrors.ErrNotAuthorized
		}
		if currentStatus != StatusManagerApproved {
			return "", leaveerrors.ErrInvalidStatus
		}
		return StatusHRApproved, nil

	case user.RoleDirector:
		switch employeeRole {
		case user.RoleEmployee:
			if currentStatus != StatusHRApproved {
				return "", leaveerrors.ErrInvalidStatus
			}
			return StatusDirectorApproved, nil
		case user.RoleManager, user.RoleHR:
			// manager/HR requests skip the chain and land on the director
			if currentStatus != StatusApplied {
				return "", leaveerrors.ErrInvalidStatus
			}
			return StatusDirectorApproved, nil
		default:
			return "", leaveerrors.ErrNotAuthorized
		}

	default:
		return "", leaveerrors.ErrNotAuthorized
	}
}

// balanceColumn maps a leave type to the users balance column the terminal
// approval deducts from. "other" has no counter and deducts nothing.
func balanceColumn(leaveType string) (string, bool) {
	switch leaveType {
	case LeaveTypeCasual:
		return "casual_leave", true
	case LeaveTypeSick:
		return "sick_leave", true
	case LeaveTypeEarned:
		return "earned_leave", true
	case LeaveTypeMaternity:
		return "maternity_leave", true
	default:
		return "", false
	}
}

package leave_test

import (
	"testing"

	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/user"

	"github.com/stretchr/testify/assert"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, leave.StatusApplied, leave.InitialStatus(user.RoleEmployee))
	assert.Equal(t, leave.StatusApplied, leave.InitialStatus(user.RoleManager))
	assert.Equal(t, leave.StatusApplied, leave.InitialStatus(user.RoleHR))
	assert.Equal(t, leave.StatusDirectorApproved, leave.InitialStatus(user.RoleDirector))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, leave.IsTerminal(leave.StatusDirectorApproved))
	assert.True(t, leave.IsTerminal(leave.StatusRejected))
	assert.False(t, leave.IsTerminal(leave.StatusApplied))
	assert.False(t, leave.IsTerminal(leave.StatusManagerApproved))
	assert.False(t, leave.IsTerminal(leave.StatusHRApproved))
}

func TestTransition_ApprovalChain(t *testing.T) {
	tests := []struct {
		name         string
		actorRole    string
		employeeRole string
		current      string
		want         string
	}{
		{"manager approves employee request", user.RoleManager, user.RoleEmployee, leave.StatusApplied, leave.StatusManagerApproved},
		{"hr approves after manager", user.RoleHR, user.RoleEmployee, leave.StatusManagerApproved, leave.StatusHRApproved},
		{"director approves after hr", user.RoleDirector, user.RoleEmployee, leave.StatusHRApproved, leave.StatusDirectorApproved},
		{"director decides manager request directly", user.RoleDirector, user.RoleManager, leave.StatusApplied, leave.StatusDirectorApproved},
		{"director decides hr request directly", user.RoleDirector, user.RoleHR, leave.StatusApplied, leave.StatusDirectorApproved},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, err := leave.Transition(tc.actorRole, tc.employeeRole, tc.current)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, next)
		})
	}
}

// An actor whose role can never decide this request gets ErrNotAuthorized;
// an actor with authority acting at the wrong step gets ErrInvalidStatus.
// The two must never blur into each other.
func TestTransition_ForbiddenVsInvalidState(t *testing.T) {
	forbidden := []struct {
		name         string
		actorRole    string
		employeeRole string
		current      string
	}{
		{"employee can never decide", user.RoleEmployee, user.RoleEmployee, leave.StatusApplied},
		{"manager cannot decide a manager request", user.RoleManager, user.RoleManager, leave.StatusApplied},
		{"manager cannot decide an hr request", user.RoleManager, user.RoleHR, leave.StatusApplied},
		{"hr cannot decide a manager request", user.RoleHR, user.RoleManager, leave.StatusApplied},
		{"hr cannot decide an hr request", user.RoleHR, user.RoleHR, leave.StatusApplied},
		{"unknown actor role", "intern", user.RoleEmployee, leave.StatusApplied},
		{"director cannot decide a director request", user.RoleDirector, user.RoleDirector, leave.StatusApplied},
	}
	for _, tc := range forbidden {
		t.Run(tc.name, func(t *testing.T) {
			_, err := leave.Transition(tc.actorRole, tc.employeeRole, tc.current)
			assert.ErrorIs(t, err, leaveerrors.ErrNotAuthorized)
		})
	}

	invalidState := []struct {
		name         string
		actorRole    string
		employeeRole string
		current      string
	}{
		{"manager acting twice", user.RoleManager, user.RoleEmployee, leave.StatusManagerApproved},
		{"manager acting late", user.RoleManager, user.RoleEmployee, leave.StatusHRApproved},
		{"hr acting before manager", user.RoleHR, user.RoleEmployee, leave.StatusApplied},
		{"hr acting after itself", user.RoleHR, user.RoleEmployee, leave.StatusHRApproved},
		{"director acting before hr", user.RoleDirector, user.RoleEmployee, leave.StatusApplied},
		{"director acting before hr at manager step", user.RoleDirector, user.RoleEmployee, leave.StatusManagerApproved},
		{"director re-deciding a manager request", user.RoleDirector, user.RoleManager, leave.StatusDirectorApproved},
	}
	for _, tc := range invalidState {
		t.Run(tc.name, func(t *testing.T) {
			_, err := leave.Transition(tc.actorRole, tc.employeeRole, tc.current)
			assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatus)
		})
	}
}

// Terminal states reject any further decision regardless of who asks.
func TestTransition_TerminalStates(t *testing.T) {
	for _, terminal := range []string{leave.StatusDirectorApproved, leave.StatusRejected} {
		for _, actor := range []string{user.RoleManager, user.RoleHR, user.RoleDirector} {
			_, err := leave.Transition(actor, user.RoleEmployee, terminal)
			assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatus, "actor %s on %s", actor, terminal)
		}
	}
}

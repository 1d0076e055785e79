package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{AlertStatusActive, AlertStatusAcknowledged, true},
		{AlertStatusActive, AlertStatusResolved, true},
		{AlertStatusAcknowledged, AlertStatusInProgress, true},
		{AlertStatusInProgress, AlertStatusFalseAlarm, true},
		{AlertStatusInProgress, AlertStatusAcknowledged, false},
		{AlertStatusActive, AlertStatusActive, false},
		{AlertStatusResolved, AlertStatusActive, false},
		{AlertStatusCancelled, AlertStatusResolved, false},
		{AlertStatusActive, AlertStatusCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel(AlertStatusActive))
	assert.True(t, CanCancel(AlertStatusAcknowledged))
	assert.False(t, CanCancel(AlertStatusInProgress))
	assert.False(t, CanCancel(AlertStatusResolved))
}

func TestStatusClassification(t *testing.T) {
	for _, s := range []string{AlertStatusResolved, AlertStatusCancelled, AlertStatusFalseAlarm} {
		assert.True(t, IsTerminalAlertStatus(s))
		assert.False(t, IsOpenAlertStatus(s))
	}
	for _, s := range []string{AlertStatusActive, AlertStatusAcknowledged, AlertStatusInProgress} {
		assert.False(t, IsTerminalAlertStatus(s))
		assert.True(t, IsOpenAlertStatus(s))
	}
}

func TestIsAdminRole(t *testing.T) {
	assert.True(t, IsAdminRole(RoleAdmin))
	assert.True(t, IsAdminRole(RoleSuperAdmin))
	assert.False(t, IsAdminRole(RoleTourist))
	assert.False(t, IsAdminRole(""))
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusUnderInvestigation, true},
		{StatusPending, StatusResolved, true},
		{StatusPending, StatusRejected, true},
		{StatusUnderInvestigation, StatusResolved, true},
		{StatusUnderInvestigation, StatusRejected, true},

		// backward moves
		{StatusUnderInvestigation, StatusPending, false},
		{StatusResolved, StatusPending, false},
		{StatusRejected, StatusPending, false},

		// terminal states are closed
		{StatusResolved, StatusUnderInvestigation, false},
		{StatusResolved, StatusRejected, false},
		{StatusRejected, StatusResolved, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusUnderInvestigation, StatusResolved, StatusRejected} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestEditable(t *testing.T) {
	r := Record{Status: StatusPending}
	assert.True(t, r.Editable())

	for _, s := range []string{StatusUnderInvestigation, StatusResolved, StatusRejected} {
		r.Status = s
		assert.False(t, r.Editable(), s)
	}
}

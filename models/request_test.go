package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pending", StatusPending},
		{"Pending", StatusPending},
		{" approved ", StatusApproved},
		{"collected", StatusCollected},
		{"picked_up", StatusCollected},
		{"Picked Up", StatusCollected},
		{"received_by_recycler", StatusReceived},
		{"received by recycler", StatusReceived},
		{"Received", StatusReceived},
		{"garbage", "garbage"},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeStatus(tc.in), "input %q", tc.in)
	}
}

func TestNextStatusForwardOnly(t *testing.T) {
	allowed := map[[2]string]bool{
		{StatusPending, StatusApproved}:   true,
		{StatusApproved, StatusCollected}: true,
		{StatusCollected, StatusReceived}: true,
	}

	statuses := []string{StatusPending, StatusApproved, StatusCollected, StatusReceived}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			assert.Equal(t, want, NextStatus(from, to), "%s -> %s", from, to)
		}
	}

	// Terminal state and unknown inputs never advance.
	assert.False(t, NextStatus(StatusReceived, StatusPending))
	assert.False(t, NextStatus("bogus", StatusApproved))
	assert.False(t, NextStatus(StatusPending, "bogus"))
}

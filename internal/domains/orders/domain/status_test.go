package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:    {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}
	all := []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

	for from, targets := range allowed {
		legal := make(map[Status]bool, len(targets))
		for _, to := range targets {
			legal[to] = true
		}
		for _, to := range all {
			got := CanTransition(from, to)
			assert.Equalf(t, legal[to], got, "transition %s -> %s", from, to)
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(Status("Archived"), StatusPending))
	assert.False(t, CanTransition(StatusPending, Status("Archived")))
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("Shipped")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, status)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

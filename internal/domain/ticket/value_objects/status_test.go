package value_objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, TicketStatus("open").IsValid())
	assert.False(t, TicketStatus("").IsValid())
}

func TestTicketStatus_NominalOrder(t *testing.T) {
	statuses := AllStatuses()
	for i := 1; i < len(statuses); i++ {
		assert.Greater(t, statuses[i].Rank(), statuses[i-1].Rank(),
			"%s should rank above %s", statuses[i], statuses[i-1])
	}
}

func TestTicketStatus_IsBackwardFrom(t *testing.T) {
	tests := []struct {
		from     TicketStatus
		to       TicketStatus
		backward bool
	}{
		{StatusNew, StatusTriaged, false},
		{StatusTriaged, StatusApproved, false},
		{StatusInReview, StatusInProgress, true},
		{StatusResolved, StatusNew, true},
		{StatusNew, StatusClosed, false},
		{StatusUserReview, StatusResolved, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.backward, tt.to.IsBackwardFrom(tt.from),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestNewTicketStatus(t *testing.T) {
	s, err := NewTicketStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	_, err = NewTicketStatus("doing")
	require.Error(t, err)
}

func TestPriority(t *testing.T) {
	p, err := NewPriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityUnset, p)
	assert.False(t, p.IsSet())

	p, err = NewPriority("critical")
	require.NoError(t, err)
	assert.True(t, p.IsSet())

	_, err = NewPriority("urgent")
	require.Error(t, err)
}

func TestTestingResult(t *testing.T) {
	assert.True(t, TestingFail.NeedsRework())
	assert.True(t, TestingPartial.NeedsRework())
	assert.False(t, TestingPass.NeedsRework())
	assert.False(t, TestingPending.NeedsRework())

	_, err := NewTestingResult("skipped")
	require.Error(t, err)
}

func TestActor(t *testing.T) {
	a, err := NewActor("agent", "triage-bot")
	require.NoError(t, err)
	assert.True(t, a.Type.IsAgent())

	_, err = NewActor("robot", "x")
	require.Error(t, err)

	_, err = NewActor("admin", "")
	require.Error(t, err)

	assert.NoError(t, SystemActor().Validate())
}

func TestVisibility(t *testing.T) {
	v, err := NewVisibility("user_visible")
	require.NoError(t, err)
	assert.True(t, v.IsUserVisible())

	_, err = NewVisibility("public")
	require.Error(t, err)
}

package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "shipdesk/internal/domain/ticket/value_objects"
)

func TestApplyUpdate_NoChanges(t *testing.T) {
	tk := newTestTicket(t)
	before := tk.UpdatedAt()

	time.Sleep(time.Millisecond)
	diffs := tk.ApplyUpdate(UpdateChanges{}, adminActor())

	assert.Empty(t, diffs)
	assert.True(t, before.Equal(tk.UpdatedAt()), "no-op update must not advance updatedAt")
}

func TestApplyUpdate_IdenticalValuesProduceNoDiffs(t *testing.T) {
	tk := newTestTicket(t)
	before := tk.UpdatedAt()

	title := tk.Title()
	priority := tk.Priority()
	tags := tk.Tags()

	time.Sleep(time.Millisecond)
	diffs := tk.ApplyUpdate(UpdateChanges{
		Title:    &title,
		Priority: &priority,
		Tags:     &tags,
	}, adminActor())

	assert.Empty(t, diffs)
	assert.True(t, before.Equal(tk.UpdatedAt()))
}

func TestApplyUpdate_TracksEachChangedField(t *testing.T) {
	tk := newTestTicket(t)

	newTitle := "Login broken on Safari"
	high := vo.PriorityHigh
	tags := []string{"auth", "safari"}
	wp := 3

	diffs := tk.ApplyUpdate(UpdateChanges{
		Title:        &newTitle,
		Priority:     &high,
		Tags:         &tags,
		WorkPriority: &wp,
	}, adminActor())

	require.Len(t, diffs, 4)

	fields := make(map[string]FieldChange, len(diffs))
	for _, d := range diffs {
		fields[d.Field] = d
	}

	assert.Equal(t, "Login fails", fields["title"].From)
	assert.Equal(t, "Login broken on Safari", fields["title"].To)
	assert.Equal(t, "unset", fields["priority"].From)
	assert.Equal(t, "high", fields["priority"].To)
	assert.Equal(t, nil, fields["workPriority"].From)
	assert.Equal(t, 3, fields["workPriority"].To)

	assert.Equal(t, newTitle, tk.Title())
	assert.Equal(t, vo.PriorityHigh, tk.Priority())
	assert.Equal(t, tags, tk.Tags())
	assert.Equal(t, "alice", tk.UpdatedBy())
}

func TestApplyUpdate_FollowupFields(t *testing.T) {
	tk := newTestTicket(t)

	due := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	needs := true
	notes := "check with the reporter after the next deploy"

	diffs := tk.ApplyUpdate(UpdateChanges{
		NeedsFollowup: &needs,
		FollowupNotes: &notes,
		FollowupAfter: &due,
	}, adminActor())

	require.Len(t, diffs, 3)
	assert.True(t, tk.NeedsFollowup())
	require.NotNil(t, tk.FollowupAfter())
	assert.True(t, due.Equal(*tk.FollowupAfter()))

	// applying the same follow-up date again is a no-op
	diffs = tk.ApplyUpdate(UpdateChanges{FollowupAfter: &due}, adminActor())
	assert.Empty(t, diffs)
}

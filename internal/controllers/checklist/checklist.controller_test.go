package checklistController

import (
	"testing"
	. "villabook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupItems(t *testing.T) {
	items := []ChecklistItem{
		{ID: 1, Title: "Check towels", Scope: TaskScopeEntry, Location: "bathroom"},
		{ID: 2, Title: "Empty bins", Scope: TaskScopeExit, Location: "kitchen"},
		{ID: 3, Title: "Open windows", Scope: TaskScopeBoth, Location: "general"},
		{ID: 4, Title: "Check fridge", Scope: TaskScopeBoth, Location: "kitchen"},
	}

	grouped := GroupItems(items)

	t.Run("entry tab gets entry and both items", func(t *testing.T) {
		require.Len(t, grouped[TaskScopeEntry]["bathroom"], 1)
		require.Len(t, grouped[TaskScopeEntry]["general"], 1)
		require.Len(t, grouped[TaskScopeEntry]["kitchen"], 1)
		assert.Equal(t, "Check fridge", grouped[TaskScopeEntry]["kitchen"][0].Title)
	})

	t.Run("exit tab gets exit and both items", func(t *testing.T) {
		require.Len(t, grouped[TaskScopeExit]["kitchen"], 2)
		assert.Empty(t, grouped[TaskScopeExit]["bathroom"])
	})

	t.Run("both-scoped items appear on both tabs", func(t *testing.T) {
		assert.Equal(t, "Open windows", grouped[TaskScopeEntry]["general"][0].Title)
		assert.Equal(t, "Open windows", grouped[TaskScopeExit]["general"][0].Title)
	})

	t.Run("empty catalog yields empty tabs", func(t *testing.T) {
		empty := GroupItems(nil)
		assert.Empty(t, empty[TaskScopeEntry])
		assert.Empty(t, empty[TaskScopeExit])
	})
}

func TestChecklistItemAppliesTo(t *testing.T) {
	entry := ChecklistItem{Scope: TaskScopeEntry}
	both := ChecklistItem{Scope: TaskScopeBoth}

	assert.True(t, entry.AppliesTo(TaskScopeEntry))
	assert.False(t, entry.AppliesTo(TaskScopeExit))
	assert.True(t, both.AppliesTo(TaskScopeEntry))
	assert.True(t, both.AppliesTo(TaskScopeExit))
}

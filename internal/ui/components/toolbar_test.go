package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devnullvoid/pixgrid/internal/ui/models"
)

func TestDeleteLabel(t *testing.T) {
	assert.Equal(t, "Delete Selected (0)", DeleteLabel(0))
	assert.Equal(t, "Delete Selected (3)", DeleteLabel(3))
}

func TestToolbar_SelectedCount(t *testing.T) {
	tb := NewToolbar(models.SortDate)
	assert.True(t, tb.DeleteDisabled())

	tb.SetSelectedCount(2)
	assert.False(t, tb.DeleteDisabled())
	assert.Equal(t, DeleteLabel(2), tb.deleteBtn.GetLabel())

	tb.SetSelectedCount(0)
	assert.True(t, tb.DeleteDisabled())
}

func TestToolbar_SetSortKeyIsSilent(t *testing.T) {
	tb := NewToolbar(models.SortSize)
	assert.Equal(t, models.SortSize, tb.SortKey())

	var changes []models.SortKey
	tb.SetSortChangedFunc(func(k models.SortKey) { changes = append(changes, k) })

	tb.SetSortKey(models.SortTitle)
	assert.Equal(t, models.SortTitle, tb.SortKey())
	assert.Empty(t, changes)
}

func TestToolbar_Focusables(t *testing.T) {
	tb := NewToolbar(models.SortDate)
	assert.Len(t, tb.Focusables(), 3)
	assert.Equal(t, tb.SortDropDown(), tb.Focusables()[0])
}

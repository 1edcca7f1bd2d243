package models

import (
	"sort"
	"strings"
	"sync"

	"github.com/devnullvoid/pixgrid/internal/logger"
	"github.com/devnullvoid/pixgrid/pkg/api"
	"github.com/devnullvoid/pixgrid/pkg/api/interfaces"
)

// Remover deletes images by id. *store.Store satisfies it.
type Remover interface {
	RemoveImagesByID(ids []string) int
}

// ViewModel holds the view-local state: search term, sort key and the
// selection map. It never mutates stored images except through a Remover.
type ViewModel struct {
	mu sync.RWMutex

	SearchTerm string
	SortKey    SortKey
	// Selected maps image id to selection. Absent ids are unselected.
	Selected map[string]bool
}

// NewViewModel returns a view model with an empty selection.
func NewViewModel(key SortKey) *ViewModel {
	return &ViewModel{
		SortKey:  key,
		Selected: make(map[string]bool),
	}
}

// UI logger instance - will be set by the main application.
var uiLogger interfaces.Logger

// SetUILogger sets the shared logger instance for UI components.
func SetUILogger(logger interfaces.Logger) {
	uiLogger = logger
}

// GetUILogger returns the UI logger, with fallback if not set.
func GetUILogger() interfaces.Logger {
	if uiLogger != nil {
		return uiLogger
	}

	return logger.GetGlobalLogger()
}

// FilterImages keeps images where term, ignoring case, occurs in the
// description, alt description, a tag title or the author's name. An empty
// term keeps everything. Missing fields never match.
func FilterImages(images []api.Image, term string) []api.Image {
	if term == "" {
		filtered := make([]api.Image, len(images))
		copy(filtered, images)

		return filtered
	}

	term = strings.ToLower(term)
	filtered := make([]api.Image, 0, len(images))

	for _, img := range images {
		if matches(img, term) {
			filtered = append(filtered, img)
		}
	}

	return filtered
}

func matches(img api.Image, term string) bool {
	if img.Description != nil && strings.Contains(strings.ToLower(*img.Description), term) {
		return true
	}

	if img.AltDescription != nil && strings.Contains(strings.ToLower(*img.AltDescription), term) {
		return true
	}

	for _, tag := range img.Tags {
		if strings.Contains(strings.ToLower(tag.Title), term) {
			return true
		}
	}

	return strings.Contains(strings.ToLower(img.User.Name), term)
}

// Visible returns the images to display: filtered by the search term, then
// sorted by the sort key.
func (vm *ViewModel) Visible(images []api.Image) []api.Image {
	vm.mu.RLock()
	term, key := vm.SearchTerm, vm.SortKey
	vm.mu.RUnlock()

	return SortImages(FilterImages(images, term), key)
}

// Current returns the search term and sort key.
func (vm *ViewModel) Current() (string, SortKey) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	return vm.SearchTerm, vm.SortKey
}

// SetSearchTerm replaces the search term.
func (vm *ViewModel) SetSearchTerm(term string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.SearchTerm = term
}

// SetSortKey replaces the sort key.
func (vm *ViewModel) SetSortKey(key SortKey) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.SortKey = key
}

// CycleSort advances to the next sort key and returns it.
func (vm *ViewModel) CycleSort() SortKey {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.SortKey = vm.SortKey.Next()

	return vm.SortKey
}

// IsSelected reports whether id is selected.
func (vm *ViewModel) IsSelected(id string) bool {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	return vm.Selected[id]
}

// Toggle flips the selection of id.
func (vm *ViewModel) Toggle(id string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.ensureMap()
	vm.Selected[id] = !vm.Selected[id]
}

// ToggleSelectAll deselects every visible image when all of them are
// selected and selects every visible image otherwise. Entries for images
// outside visible are left alone.
func (vm *ViewModel) ToggleSelectAll(visible []api.Image) {
	if len(visible) == 0 {
		return
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.ensureMap()

	allSelected := true
	for _, img := range visible {
		if !vm.Selected[img.ID] {
			allSelected = false
			break
		}
	}

	for _, img := range visible {
		vm.Selected[img.ID] = !allSelected
	}
}

// AllSelected reports whether visible is non-empty and fully selected.
func (vm *ViewModel) AllSelected(visible []api.Image) bool {
	if len(visible) == 0 {
		return false
	}

	vm.mu.RLock()
	defer vm.mu.RUnlock()

	for _, img := range visible {
		if !vm.Selected[img.ID] {
			return false
		}
	}

	return true
}

// SelectedIDs returns every selected id, visible or not, sorted.
func (vm *ViewModel) SelectedIDs() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	ids := make([]string, 0, len(vm.Selected))
	for id, on := range vm.Selected {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	return ids
}

// SelectedCount is the number of selected ids.
func (vm *ViewModel) SelectedCount() int {
	return len(vm.SelectedIDs())
}

// DeleteDisabled reports whether there is nothing to delete.
func (vm *ViewModel) DeleteDisabled() bool {
	return vm.SelectedCount() == 0
}

// DeleteSelected removes every selected image through r and clears the
// selection. Selected images hidden by the current filter are removed too.
// With nothing selected it does nothing and returns nil.
func (vm *ViewModel) DeleteSelected(r Remover) []string {
	ids := vm.SelectedIDs()
	if len(ids) == 0 {
		return nil
	}

	removed := r.RemoveImagesByID(ids)
	GetUILogger().Debug("Deleted %d of %d selected images", removed, len(ids))

	vm.mu.Lock()
	vm.Selected = make(map[string]bool)
	vm.mu.Unlock()

	return ids
}

func (vm *ViewModel) ensureMap() {
	if vm.Selected == nil {
		vm.Selected = make(map[string]bool)
	}
}

package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// halfWindowDivisor is used to keep the cursor near the middle of the window.
const halfWindowDivisor = 2

// RenderFunc renders one item. selected marks the cursor row.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a cursor over items with a scrolling window of height rows.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]
	selected   int
	from, to   int
	height     int
}

// New creates a list showing at most height rows.
func New[T any](items []T, height int, renderFunc RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     max(height, 1),
	}
	m.updateWindow()
	return m
}

// Update moves the cursor on ↑/↓ (and k/j). Other keys are ignored.
//
//nolint:exhaustive // Only navigation keys are relevant.
func (m *Model[T]) Update(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp:
		return m.move(-1)
	case tea.KeyDown:
		return m.move(1)
	case tea.KeyHome:
		return m.SetSelected(0)
	case tea.KeyEnd:
		return m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "k":
			return m.move(-1)
		case "j":
			return m.move(1)
		}
	}
	return false
}

func (m *Model[T]) move(delta int) bool {
	return m.SetSelected(m.selected + delta)
}

// SetSelected moves the cursor, capped to valid bounds. It reports whether
// the cursor changed.
func (m *Model[T]) SetSelected(index int) bool {
	if len(m.items) == 0 {
		m.selected = 0
		return false
	}
	index = min(max(index, 0), len(m.items)-1)
	if index == m.selected {
		return false
	}
	m.selected = index
	m.updateWindow()
	return true
}

// SetItems replaces the items, keeping the cursor in bounds.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.selected = min(m.selected, max(len(items)-1, 0))
	m.updateWindow()
}

func (m *Model[T]) updateWindow() {
	if len(m.items) == 0 {
		m.from, m.to = 0, 0
		return
	}

	from := max(m.selected-m.height/halfWindowDivisor, 0)
	to := from + m.height
	if to > len(m.items) {
		to = len(m.items)
		from = max(to-m.height, 0)
	}
	m.from, m.to = from, to
}

// View renders the visible window.
func (m *Model[T]) View() string {
	lines := make([]string, 0, m.to-m.from)
	for i := m.from; i < m.to; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// Items returns the list items.
func (m *Model[T]) Items() []T {
	return m.items
}

// Selected returns the cursor index.
func (m *Model[T]) Selected() int {
	return m.selected
}

// SelectedItem returns the item under the cursor, or false if empty.
func (m *Model[T]) SelectedItem() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[m.selected], true
}

// Window returns the visible index range [from, to).
func (m *Model[T]) Window() (int, int) {
	return m.from, m.to
}

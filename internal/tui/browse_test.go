package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(n int) []BrowseItem {
	items := make([]BrowseItem, n)
	for i := range items {
		items[i] = BrowseItem{
			ID:     fmt.Sprintf("id-%02d", i),
			Title:  fmt.Sprintf("Item %02d", i),
			Detail: "detail",
		}
	}
	return items
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBrowseModel_CursorAndPaging(t *testing.T) {
	m := NewBrowseModel("Products", testItems(20))
	m.pageSize = 5

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "id-00", selected.ID)

	// Down within the page.
	next, _ := m.Update(keyMsg("j"))
	m = next.(BrowseModel)
	selected, _ = m.Selected()
	assert.Equal(t, "id-01", selected.ID)

	// Down past the page boundary rolls onto the next page.
	for i := 0; i < 4; i++ {
		next, _ = m.Update(keyMsg("j"))
		m = next.(BrowseModel)
	}
	assert.Equal(t, 1, m.page)
	selected, _ = m.Selected()
	assert.Equal(t, "id-05", selected.ID)

	// Explicit page navigation.
	next, _ = m.Update(keyMsg("l"))
	m = next.(BrowseModel)
	assert.Equal(t, 2, m.page)

	next, _ = m.Update(keyMsg("h"))
	m = next.(BrowseModel)
	assert.Equal(t, 1, m.page)
	assert.Equal(t, 4, m.totalPages())
}

func TestBrowseModel_Filter(t *testing.T) {
	m := NewBrowseModel("Products", []BrowseItem{
		{ID: "p1", Title: "Red Widget"},
		{ID: "p2", Title: "Blue Widget"},
		{ID: "p3", Title: "Red Gadget"},
	})

	// Enter filter mode and type a query.
	next, _ := m.Update(keyMsg("/"))
	m = next.(BrowseModel)
	require.True(t, m.filtering)

	for _, r := range "red" {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(BrowseModel)
	}
	assert.Len(t, m.filtered, 2)

	// Enter confirms the filter and returns to browsing.
	next, _ = m.Update(keyMsg("enter"))
	m = next.(BrowseModel)
	assert.False(t, m.filtering)

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "p1", selected.ID)

	// Esc clears the filter.
	next, _ = m.Update(keyMsg("esc"))
	m = next.(BrowseModel)
	assert.Len(t, m.filtered, 3)
}

func TestBrowseModel_FilterNoMatches(t *testing.T) {
	m := NewBrowseModel("Products", testItems(3))

	next, _ := m.Update(keyMsg("/"))
	m = next.(BrowseModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	m = next.(BrowseModel)

	assert.Empty(t, m.filtered)
	_, ok := m.Selected()
	assert.False(t, ok)

	next, _ = m.Update(keyMsg("enter"))
	m = next.(BrowseModel)
	assert.Contains(t, m.View(), "no matching entries")
}

func TestBrowseModel_Quit(t *testing.T) {
	m := NewBrowseModel("Products", testItems(3))

	next, cmd := m.Update(keyMsg("q"))
	m = next.(BrowseModel)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, "", m.View())
}

func TestBrowseModel_WindowResize(t *testing.T) {
	m := NewBrowseModel("Products", testItems(30))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 16})
	m = next.(BrowseModel)
	assert.Equal(t, 10, m.pageSize)
}

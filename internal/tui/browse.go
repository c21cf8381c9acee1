package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultPageSize = 15

// BrowseItem is one row of the entity browser.
type BrowseItem struct {
	ID     string
	Title  string
	Detail string
}

// browseKeyMap defines the keyboard shortcuts
type browseKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Filter   key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

var browseKeys = browseKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right", "pgdown", "l"),
		key.WithHelp("→", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left", "pgup", "h"),
		key.WithHelp("←", "prev page"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// browseStyles contains lipgloss styles for the browser
type browseStyles struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Detail   lipgloss.Style
	Footer   lipgloss.Style
}

func defaultBrowseStyles() browseStyles {
	return browseStyles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Item:   lipgloss.NewStyle(),
		Detail: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginTop(1),
	}
}

// BrowseModel is a paged, filterable read-only list of entities.
// Filtering happens client-side over the already-fetched items.
type BrowseModel struct {
	title string
	items []BrowseItem

	filtered  []BrowseItem
	filter    textinput.Model
	filtering bool

	cursor   int
	page     int
	pageSize int

	quitting bool
	styles   browseStyles
	keys     browseKeyMap
}

// NewBrowseModel creates a browser over a fixed set of items.
func NewBrowseModel(title string, items []BrowseItem) BrowseModel {
	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.Prompt = "/ "

	return BrowseModel{
		title:    title,
		items:    items,
		filtered: items,
		filter:   filter,
		pageSize: defaultPageSize,
		styles:   defaultBrowseStyles(),
		keys:     browseKeys,
	}
}

// Init implements tea.Model
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave room for title, filter line and footer.
		if size := msg.Height - 6; size > 0 {
			m.pageSize = size
		}
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFiltering(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m BrowseModel) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m BrowseModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Clear):
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else if m.page > 0 {
			m.page--
			m.cursor = m.pageSize - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.pageItems())-1 {
			m.cursor++
		} else if (m.page+1)*m.pageSize < len(m.filtered) {
			m.page++
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if (m.page+1)*m.pageSize < len(m.filtered) {
			m.page++
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if m.page > 0 {
			m.page--
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}

// applyFilter recomputes the visible items and clamps the cursor.
func (m *BrowseModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.filtered = m.items
	} else {
		var filtered []BrowseItem
		for _, item := range m.items {
			haystack := strings.ToLower(item.ID + " " + item.Title + " " + item.Detail)
			if strings.Contains(haystack, query) {
				filtered = append(filtered, item)
			}
		}
		m.filtered = filtered
	}

	m.page = 0
	if m.cursor >= len(m.pageItems()) {
		m.cursor = 0
	}
}

func (m BrowseModel) pageItems() []BrowseItem {
	start := m.page * m.pageSize
	if start >= len(m.filtered) {
		return nil
	}
	end := start + m.pageSize
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	return m.filtered[start:end]
}

func (m BrowseModel) totalPages() int {
	if len(m.filtered) == 0 {
		return 1
	}
	return (len(m.filtered) + m.pageSize - 1) / m.pageSize
}

// Selected returns the item under the cursor, if any.
func (m BrowseModel) Selected() (BrowseItem, bool) {
	items := m.pageItems()
	if m.cursor < 0 || m.cursor >= len(items) {
		return BrowseItem{}, false
	}
	return items[m.cursor], true
}

// View implements tea.Model
func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	items := m.pageItems()
	if len(items) == 0 {
		b.WriteString(m.styles.Detail.Render("no matching entries"))
		b.WriteString("\n")
	}
	for i, item := range items {
		line := item.Title
		if item.Detail != "" {
			line += "  " + m.styles.Detail.Render(item.Detail)
		}
		if i == m.cursor && !m.filtering {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Item.Render("  " + line))
		}
		b.WriteString("\n")
	}

	footer := strings.Join([]string{
		m.pageIndicator(),
		"/ filter",
		"q quit",
	}, "  ·  ")
	b.WriteString(m.styles.Footer.Render(footer))

	return b.String()
}

func (m BrowseModel) pageIndicator() string {
	noun := "entries"
	if len(m.filtered) == 1 {
		noun = "entry"
	}
	return fmt.Sprintf("page %d/%d (%d %s)", m.page+1, m.totalPages(), len(m.filtered), noun)
}

// RunBrowse runs the browser until the user quits.
func RunBrowse(title string, items []BrowseItem) error {
	program := tea.NewProgram(NewBrowseModel(title, items), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

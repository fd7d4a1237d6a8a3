package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.AdaptiveColor{Light: "#D6249F", Dark: "#FF79C6"}
	dimColor    = lipgloss.AdaptiveColor{Light: "#777777", Dark: "#6272A4"}
	hlBgColor   = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#333333"}

	headerStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			PaddingLeft(1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Background(hlBgColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			PaddingLeft(1)
)

// Builtin is a minimal fuzzy-ish picker used when fzf isn't on PATH. It
// filters on typed substrings and returns the highlighted line.
type Builtin struct {
	Header string
}

func (b *Builtin) Choose(items []string) (string, bool, error) {
	m := newPickerModel(items, b.Header)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return "", false, err
	}

	result := final.(pickerModel)
	if result.choice == "" {
		return "", false, nil
	}
	return result.choice, true, nil
}

type pickerModel struct {
	header   string
	items    []string
	filtered []string
	cursor   int
	input    textinput.Model
	height   int
	choice   string
}

func newPickerModel(items []string, header string) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	return pickerModel{
		header:   header,
		items:    items,
		filtered: items,
		input:    ti,
		height:   24,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.cursor < len(m.filtered) {
				m.choice = m.filtered[m.cursor]
			}
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filtered = filterItems(m.items, m.input.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
	return m, cmd
}

// filterItems keeps items containing every whitespace-separated term,
// case-insensitively, preserving the original order.
func filterItems(items []string, query string) []string {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return items
	}

	var out []string
	for _, item := range items {
		lower := strings.ToLower(item)
		match := true
		for _, term := range terms {
			if !strings.Contains(lower, term) {
				match = false
				break
			}
		}
		if match {
			out = append(out, item)
		}
	}
	return out
}

func (m pickerModel) View() string {
	var b strings.Builder

	if m.header != "" {
		b.WriteString(headerStyle.Render(m.header))
		b.WriteString("\n")
	}
	b.WriteString(" " + m.input.View())
	b.WriteString("\n\n")

	visible := m.height - 6
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}

	for i := start; i < len(m.filtered) && i < start+visible; i++ {
		line := strings.ReplaceAll(m.filtered[i], "\t", "  ")
		if i == m.cursor {
			b.WriteString(cursorStyle.Render(" ❯ "))
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString("   " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: select · esc: cancel"))
	return b.String()
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/ucsbuf"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	hexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err   error
	buf   *ucsbuf.Buffer
	input textinput.Model
	marks []mark
	log   []logEntry
	width int
	hex   bool
	state modelState
}

type mark struct {
	pos ucsbuf.Position
	len int
}

type logEntry struct {
	text   string
	failed bool
}

type modelState int

const (
	stateBrowse modelState = iota
	stateEdit
)

func newInteractiveModel(width int) *interactiveModel {
	if width != 1 && width != 2 && width != 4 {
		width = 1
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Width = 48
	return &interactiveModel{
		// Small links so the chain itself is visible.
		buf:   ucsbuf.NewSize(32),
		input: ti,
		width: width,
		hex:   true,
		state: stateBrowse,
	}
}

type encodeDoneMsg struct {
	err     error
	summary string
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateBrowse {
				return m, tea.Quit
			}

		case "enter":
			if m.state == stateEdit {
				return m, m.encodeInput
			}

		case "esc":
			if m.state == stateEdit {
				m.closeInput()
			}

		case "u":
			if m.state == stateBrowse {
				m.hex = true
				m.openInput()
				return m, nil
			}

		case "t":
			if m.state == stateBrowse {
				m.hex = false
				m.openInput()
				return m, nil
			}

		case "1", "2", "4":
			if m.state == stateBrowse {
				m.width = int(msg.String()[0] - '0')
			}

		case "m":
			if m.state == stateBrowse {
				mk := mark{pos: m.buf.Tell(), len: m.buf.Len()}
				m.marks = append(m.marks, mk)
				m.logf(false, "mark #%d at %v", len(m.marks), mk.pos)
			}

		case "r":
			if m.state == stateBrowse && len(m.marks) > 0 {
				mk := m.marks[len(m.marks)-1]
				m.marks = m.marks[:len(m.marks)-1]
				m.buf.Truncate(mk.pos)
				m.logf(false, "rolled back to %v, %d bytes", mk.pos, m.buf.Len())
			}

		case "c":
			if m.state == stateBrowse {
				m.buf.Clear()
				m.marks = nil
				m.logf(false, "cleared, capacity retained")
			}
		}

	case encodeDoneMsg:
		m.err = msg.err
		if msg.err != nil {
			m.logf(true, "%v", msg.err)
		} else {
			m.logf(false, "%s", msg.summary)
			m.closeInput()
		}
	}

	if m.state == stateEdit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) openInput() {
	m.err = nil
	if m.hex {
		m.input.Placeholder = unitPlaceholder(m.width)
	} else {
		m.input.Placeholder = "literal text"
	}
	m.input.Focus()
	m.state = stateEdit
}

func (m *interactiveModel) closeInput() {
	m.err = nil
	m.input.Blur()
	m.input.SetValue("")
	m.state = stateBrowse
}

// encodeInput runs as a tea.Cmd; the outcome comes back as an encodeDoneMsg.
func (m *interactiveModel) encodeInput() tea.Msg {
	raw := m.input.Value()

	var units []uint32
	var err error
	if m.hex {
		units, err = parseUnits(raw)
	} else {
		units, err = textUnits(m.width, raw)
	}
	if err != nil {
		return encodeDoneMsg{err: err}
	}

	view, err := encode(m.buf, m.width, units)
	if err != nil {
		return encodeDoneMsg{err: err}
	}

	return encodeDoneMsg{summary: fmt.Sprintf(
		"w%d: %d units, %d bytes: %s", m.width, len(units), view.Len(), hexDump(view.Bytes(), 16),
	)}
}

func (m *interactiveModel) logf(failed bool, format string, args ...any) {
	m.log = append(m.log, logEntry{text: fmt.Sprintf(format, args...), failed: failed})
	if len(m.log) > 8 {
		m.log = m.log[len(m.log)-8:]
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ucsdump"))
	b.WriteString(fmt.Sprintf(" width %d\n\n", m.width))

	st := m.buf.Stats()
	b.WriteString(labelStyle.Render("Buffer"))
	b.WriteString(fmt.Sprintf(" %d bytes committed, %d links, %d spare\n", st.Committed, st.Links, st.SpareLinks))
	links := m.buf.LinkStats()
	for i, l := range links {
		line := fmt.Sprintf("  link %d: %3d/%3d %s", i+1, l.Committed, l.Capacity, bar(l.Committed, l.Capacity))
		if i == len(links)-1 {
			b.WriteString(activeStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Payload"))
	b.WriteString("\n")
	payload := m.buf.Bytes()
	if len(payload) == 0 {
		b.WriteString(helpStyle.Render("  (empty)"))
		b.WriteString("\n")
	} else {
		b.WriteString("  " + hexStyle.Render(hexDump(payload, 32)))
		b.WriteString("\n")
		if len(payload) <= 48 {
			b.WriteString(fmt.Sprintf("  %q\n", payload))
		}
	}

	if len(m.marks) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Marks"))
		b.WriteString("\n")
		for i, mk := range m.marks {
			b.WriteString(fmt.Sprintf("  #%d %v, %d bytes\n", i+1, mk.pos, mk.len))
		}
	}

	if len(m.log) > 0 {
		b.WriteString("\n")
		for _, e := range m.log {
			if e.failed {
				b.WriteString(errorStyle.Render("  " + e.text))
			} else {
				b.WriteString(resultStyle.Render("  " + e.text))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch m.state {
	case stateEdit:
		if m.hex {
			b.WriteString(fmt.Sprintf("Encode hex units (width %d):\n\n", m.width))
		} else {
			b.WriteString(fmt.Sprintf("Encode text (width %d):\n\n", m.width))
		}
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter encode • esc cancel"))

	case stateBrowse:
		b.WriteString(helpStyle.Render("u units • t text • 1/2/4 width • m mark • r rollback • c clear • q quit"))
	}

	return b.String()
}

func unitPlaceholder(width int) string {
	switch width {
	case 2:
		return "hex units, e.g. 48 e9 d83d de00"
	case 4:
		return "hex units, e.g. 48 e9 1f600"
	}
	return "hex units, e.g. 48 e9 ff"
}

func hexDump(b []byte, max int) string {
	if len(b) <= max {
		return fmt.Sprintf("% x", b)
	}
	return fmt.Sprintf("% x ... (%d more)", b[:max], len(b)-max)
}

func bar(used, size int) string {
	const cells = 20
	fill := 0
	if size > 0 {
		fill = used * cells / size
	}
	return "[" + strings.Repeat("#", fill) + strings.Repeat("-", cells-fill) + "]"
}

func runInteractive(width int) error {
	m := newInteractiveModel(width)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.buf.Free()
	return err
}

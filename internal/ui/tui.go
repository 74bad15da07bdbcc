// Package ui provides the optional terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/duke-go/internal/repl"
	"github.com/nibzard/duke-go/internal/task"
)

// maxTranscript is how many exchanges stay on screen.
const maxTranscript = 6

// Handler handles one command line.
type Handler interface {
	Greeting() string
	Handle(line string) (resp string, quit bool)
}

// Lister exposes the current tasks for the list panel.
type Lister interface {
	All() []task.Task
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	footerStyle  = lipgloss.NewStyle().Faint(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Run starts the TUI. It requires stdout to be a terminal.
func Run(ctx context.Context, session Handler, tasks Lister) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(newModel(session, tasks), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type exchange struct {
	line string
	resp string
}

type model struct {
	session    Handler
	tasks      Lister
	input      []rune
	transcript []exchange
	showHelp   bool
	quitting   bool
}

func newModel(session Handler, tasks Lister) *model {
	return &model{session: session, tasks: tasks}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m, m.submit()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyCtrlU:
		m.input = m.input[:0]
	case tea.KeyF1:
		m.showHelp = !m.showHelp
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}
	return m, nil
}

// submit hands the input line to the session.
func (m *model) submit() tea.Cmd {
	line := string(m.input)
	m.input = m.input[:0]
	if strings.TrimSpace(line) == "" {
		return nil
	}

	resp, quit := m.session.Handle(line)
	m.transcript = append(m.transcript, exchange{line: line, resp: resp})
	if len(m.transcript) > maxTranscript {
		m.transcript = m.transcript[len(m.transcript)-maxTranscript:]
	}
	if quit {
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("duke"))
	b.WriteString("\n\n")

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	writeTasks(&b, m.tasks.All())
	m.writeTranscript(&b)

	if !m.quitting {
		b.WriteString(promptStyle.Render("> "))
		b.WriteString(string(m.input))
		b.WriteString("\n\n")
	}
	writeFooter(&b)
	return b.String()
}

func writeTasks(b *strings.Builder, tasks []task.Task) {
	b.WriteString(headerStyle.Render(fmt.Sprintf("Tasks (%d)", len(tasks))))
	b.WriteString("\n\n")
	if len(tasks) == 0 {
		b.WriteString("  No tasks yet.\n\n")
		return
	}
	for i, t := range tasks {
		line := fmt.Sprintf("  %d.%s", i+1, t)
		if t.Done {
			line = doneStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m *model) writeTranscript(b *strings.Builder) {
	if len(m.transcript) == 0 {
		b.WriteString(m.session.Greeting())
		b.WriteString("\n\n")
		return
	}
	for _, ex := range m.transcript {
		b.WriteString(commandStyle.Render("> " + ex.line))
		b.WriteString("\n")
		resp := strings.TrimRight(ex.resp, "\n")
		if strings.HasPrefix(resp, repl.ErrorPrefix) {
			resp = errorStyle.Render(resp)
		}
		b.WriteString(resp)
		b.WriteString("\n\n")
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString(headerStyle.Render("Commands"))
	b.WriteString("\n\n")
	b.WriteString("  list                            Show all tasks\n")
	b.WriteString("  todo <description>              Add a todo\n")
	b.WriteString("  deadline <description> /by <t>  Add a deadline\n")
	b.WriteString("  event <description> /at <t>     Add an event\n")
	b.WriteString("  done <n>                        Mark task n done\n")
	b.WriteString("  delete <n>                      Remove task n\n")
	b.WriteString("  find <text>                     Search descriptions\n")
	b.WriteString("  bye                             Quit\n\n")
	b.WriteString(headerStyle.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString("  enter        Run the command\n")
	b.WriteString("  ctrl+u       Clear the input\n")
	b.WriteString("  F1           Toggle this help screen\n")
	b.WriteString("  esc, ctrl+c  Quit\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(footerStyle.Render("F1 for help | esc to quit"))
	b.WriteString("\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

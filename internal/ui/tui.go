// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todolist/internal/controller"
	"todolist/internal/output"
)

// Option configures the program.
type Option func(*options)

type options struct {
	altScreen bool
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(o *options) {
		o.altScreen = enabled
	}
}

// Run starts the interactive task list until the user quits or ctx is done.
func Run(ctx context.Context, ctrl *controller.Controller, opts ...Option) error {
	o := &options{altScreen: true}
	for _, opt := range opts {
		opt(o)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("ui requires a TTY")
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if o.altScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(NewModel(ctx, ctrl), progOpts...).Run()
	return err
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// Model is the bubbletea model wrapping a controller.
type Model struct {
	ctx     context.Context
	ctrl    *controller.Controller
	input   textinput.Model
	spinner spinner.Model
	focus   focusArea
	cursor  int
	pending bool   // a command has been dispatched and not reported back
	notice  string // per-item outcome of the last clear
}

// opDoneMsg reports a finished controller operation.
type opDoneMsg struct {
	op      string
	err     error
	results []controller.DeleteResult
}

// NewModel creates the model. Nothing is fetched until Init runs.
func NewModel(ctx context.Context, ctrl *controller.Controller) *Model {
	in := textinput.New()
	in.Placeholder = output.InputPlaceholder
	in.CharLimit = 200
	in.Width = 40
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		input:   in,
		spinner: sp,
		focus:   focusInput,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.run("fetch", m.ctrl.Mount),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave room for the add button and spinner.
		m.input.Width = max(msg.Width-24, 20)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case opDoneMsg:
		m.finish(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.toggleFocus()
		return m, nil
	}

	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.toggleFocus()
		return m, nil
	case "enter":
		if m.busy() || strings.TrimSpace(m.input.Value()) == "" {
			return m, nil
		}
		m.ctrl.SetInput(m.input.Value())
		return m, m.run("add", m.ctrl.AddTask)
	}

	// The input is disabled while an operation is outstanding.
	if m.busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetInput(m.input.Value())
	return m, cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.ctrl.Snapshot().Tasks

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case "a", "i":
		m.toggleFocus()
	case "r":
		if !m.busy() {
			return m, m.run("fetch", m.ctrl.FetchTasks)
		}
	case "d", "x", "delete":
		if !m.busy() && m.cursor < len(tasks) {
			id := tasks[m.cursor].ID
			return m, m.run("delete", func(ctx context.Context) error {
				return m.ctrl.DeleteTask(ctx, id)
			})
		}
	case " ", "enter":
		if !m.busy() && m.cursor < len(tasks) {
			id := tasks[m.cursor].ID
			return m, m.run("toggle", func(ctx context.Context) error {
				return m.ctrl.ToggleTask(ctx, id)
			})
		}
	case "C":
		if !m.busy() && len(tasks) > 0 {
			return m, m.clearAll()
		}
	}
	return m, nil
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

// run marks the model pending and returns a command running fn off the UI loop.
func (m *Model) run(op string, fn func(context.Context) error) tea.Cmd {
	m.pending = true
	m.notice = ""
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(m.ctx)}
	}
}

func (m *Model) clearAll() tea.Cmd {
	m.pending = true
	m.notice = ""
	return func() tea.Msg {
		results, err := m.ctrl.ClearAll(m.ctx)
		return opDoneMsg{op: "clear", err: err, results: results}
	}
}

func (m *Model) finish(msg opDoneMsg) {
	m.pending = false

	s := m.ctrl.Snapshot()
	// The controller clears Input once the task is created, even if the
	// re-fetch after it fails.
	if msg.op == "add" {
		m.input.SetValue(s.Input)
	}
	if m.cursor >= len(s.Tasks) {
		m.cursor = max(len(s.Tasks)-1, 0)
	}

	failed := 0
	for _, r := range msg.results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		m.notice = fmt.Sprintf("%d de %d tareas no se pudieron eliminar", failed, len(msg.results))
	}
}

func (m *Model) busy() bool {
	return m.pending || m.ctrl.Busy()
}

func (m *Model) View() string {
	s := m.ctrl.Snapshot()
	busy := m.busy()

	var b strings.Builder
	writeTitle(&b)
	if s.Err != "" {
		b.WriteString(bannerStyle.Render(s.Err) + "\n\n")
	}
	m.writeInput(&b, s, busy)
	if len(s.Tasks) > 0 {
		b.WriteString(buttonStyle(busy).Render(output.ClearButton(busy)) + "  (C)\n\n")
	}
	m.writeTasks(&b, s, busy)
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}
	b.WriteString(footerStyle.Render(output.UserLine(m.ctrl.Username())) + "\n\n")
	writeHelp(&b)
	return b.String()
}

func (m *Model) writeInput(b *strings.Builder, s controller.State, busy bool) {
	addDisabled := busy || strings.TrimSpace(m.input.Value()) == ""
	b.WriteString(m.input.View())
	b.WriteString("  ")
	b.WriteString(buttonStyle(addDisabled).Render(output.AddButton(busy)))
	if busy {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n\n")
}

func (m *Model) writeTasks(b *strings.Builder, s controller.State, busy bool) {
	if len(s.Tasks) == 0 {
		b.WriteString(placeholderStyle.Render(output.Placeholder(busy)) + "\n\n")
		return
	}

	for i, task := range s.Tasks {
		cursor := "  "
		if m.focus == focusList && i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s[%s] %s", cursor, output.Check(task.Done), output.NormalizeLabel(task.Label))
		switch {
		case m.focus == focusList && i == m.cursor:
			line = selectedStyle.Render(line)
		case task.Done:
			line = doneStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + footerStyle.Render(output.CountLine(len(s.Tasks))) + "\n")
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Lista de tareas") + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString(helpStyle.Render("tab foco · enter agregar/completar · d eliminar · C limpiar · r recargar · q salir"))
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

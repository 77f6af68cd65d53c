package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	errInterrupted = errors.New("interrupted")

	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	logStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// Stage is one step of the export. Run returns a completion message.
type Stage struct {
	Title string
	Run   func(ctx context.Context) (string, error)
}

type logLineMsg string

type stageStartMsg int

type stageDoneMsg struct {
	index   int
	message string
}

type runFinishedMsg struct {
	err error
}

// ProgressModel runs stages in order behind a spinner. Log lines written to
// LogWriter are printed above the spinner in the order they were logged.
type ProgressModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	stages []Stage
	events chan tea.Msg

	spinner  spinner.Model
	current  int
	finished bool
	err      error
}

func NewProgressModel(ctx context.Context, stages []Stage) ProgressModel {
	ctx, cancel := context.WithCancel(ctx)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ProgressModel{
		ctx:     ctx,
		cancel:  cancel,
		stages:  stages,
		events:  make(chan tea.Msg),
		spinner: s,
		current: -1,
	}
}

// LogWriter returns a writer for a slog handler. Each write becomes one
// printed line. Writes are dropped once the run is over.
func (m ProgressModel) LogWriter() io.Writer {
	return &logWriter{ctx: m.ctx, events: m.events}
}

// Err is the error that ended the run, if any.
func (m ProgressModel) Err() error {
	return m.err
}

// Close releases the run context. Call it after the program exits.
func (m ProgressModel) Close() {
	m.cancel()
}

func (m ProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run, m.waitForEvent)
}

// run executes every stage on one goroutine. Stage results travel on the
// same channel as log lines so both arrive in order.
func (m ProgressModel) run() tea.Msg {
	err := m.runStages()
	m.send(runFinishedMsg{err: err})

	return nil
}

func (m ProgressModel) runStages() error {
	for i, st := range m.stages {
		if err := m.ctx.Err(); err != nil {
			return err
		}

		m.send(stageStartMsg(i))

		msg, err := st.Run(m.ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", st.Title, err)
		}

		m.send(stageDoneMsg{index: i, message: msg})
	}

	return nil
}

func (m ProgressModel) send(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.ctx.Done():
	}
}

func (m ProgressModel) waitForEvent() tea.Msg {
	select {
	case msg := <-m.events:
		return msg
	case <-m.ctx.Done():
		return nil
	}
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.err = errInterrupted
			m.finished = true
			m.cancel()

			return m, tea.Quit
		}

	case logLineMsg:
		return m, tea.Sequence(tea.Println(logStyle.Render(string(msg))), m.waitForEvent)

	case stageStartMsg:
		m.current = int(msg)
		return m, m.waitForEvent

	case stageDoneMsg:
		line := doneStyle.Render("✓ ") + msg.message
		return m, tea.Sequence(tea.Println(line), m.waitForEvent)

	case runFinishedMsg:
		m.err = msg.err
		m.finished = true

		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ProgressModel) View() string {
	if m.finished {
		if m.err != nil {
			return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
		}

		return doneStyle.Render("All done.") + "\n"
	}

	if m.current < 0 || m.current >= len(m.stages) {
		return m.spinner.View() + " Starting...\n"
	}

	return fmt.Sprintf("%s %s %s\n",
		m.spinner.View(),
		titleStyle.Render(m.stages[m.current].Title),
		logStyle.Render(fmt.Sprintf("(%d/%d)", m.current+1, len(m.stages))),
	)
}

type logWriter struct {
	ctx    context.Context
	events chan<- tea.Msg
}

func (w *logWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")

	select {
	case w.events <- logLineMsg(line):
	case <-w.ctx.Done():
	}

	return len(p), nil
}

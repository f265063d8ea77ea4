package viz

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/basins/internal/fractal"
)

// ProgressMsg reports finished rows.
type ProgressMsg struct {
	Done, Total int
}

// DoneMsg carries the render result and ends the program.
type DoneMsg struct {
	Img     *fractal.Image
	Err     error
	Elapsed time.Duration
}

type tickMsg time.Time

// ProgressModel is a Bubble Tea model that shows a spinner, a progress bar
// and the final summary of a render.
type ProgressModel struct {
	title    string
	done     int
	total    int
	frame    int
	finished bool
	canceled bool
	result   DoneMsg
}

func NewProgressModel(title string, total int) ProgressModel {
	return ProgressModel{title: title, total: total}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m ProgressModel) Init() tea.Cmd { return tick() }

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.canceled = true
			return m, tea.Quit
		}
	case ProgressMsg:
		// rows finish out of order across workers
		if msg.Done > m.done {
			m.done = msg.Done
		}
		m.total = msg.Total
	case DoneMsg:
		m.result = msg
		m.finished = true
		if msg.Err == nil {
			m.done = m.total
		}
		return m, tea.Quit
	case tickMsg:
		if m.finished {
			return m, nil
		}
		m.frame++
		return m, tick()
	}
	return m, nil
}

func (m ProgressModel) Percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m ProgressModel) Canceled() bool { return m.canceled }

func (m ProgressModel) View() string {
	var b strings.Builder
	b.WriteString(GradientTitle.Render(m.title))
	b.WriteString("\n\n")

	switch {
	case m.finished && m.result.Err != nil:
		b.WriteString(StatusFailed.Render("failed: " + m.result.Err.Error()))
	case m.finished:
		b.WriteString(StatusRunning.Render("done"))
		b.WriteString("  " + Metric("elapsed", m.result.Elapsed.Round(time.Millisecond).String()))
	case m.canceled:
		b.WriteString(StatusFailed.Render("canceled"))
	default:
		b.WriteString(AnimatedSpinner(m.frame) + " ")
		b.WriteString(ProgressBar(m.Percent(), 40))
		b.WriteString(fmt.Sprintf(" %3.0f%%  ", m.Percent()*100))
		b.WriteString(Subtle.Render(fmt.Sprintf("%d/%d rows", m.done, m.total)))
		b.WriteString("\n" + KeyHint.Render("q to cancel"))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderFunc runs a render, reporting finished rows through progress.
type RenderFunc func(ctx context.Context, progress func(done, total int)) (*fractal.Image, error)

// RunWithProgress runs render while a progress view is drawn on stderr.
// Quitting the view cancels the render.
func RunWithProgress(ctx context.Context, title string, total int, render RenderFunc) (*fractal.Image, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(title, total), tea.WithOutput(os.Stderr))

	results := make(chan DoneMsg, 1)
	start := time.Now()
	go func() {
		img, err := render(ctx, func(done, total int) {
			p.Send(ProgressMsg{Done: done, Total: total})
		})
		msg := DoneMsg{Img: img, Err: err, Elapsed: time.Since(start)}
		results <- msg
		p.Send(msg)
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-results
		return nil, err
	}
	if m, ok := final.(ProgressModel); ok && m.Canceled() {
		cancel()
	}

	res := <-results
	return res.Img, res.Err
}

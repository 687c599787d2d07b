package viz

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/groversim/internal/grover"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	// amplitudes are drawn on [-yLimit, yLimit]
	yLimit = 1.2

	minInterval = 10 * time.Millisecond
	maxInterval = 2 * time.Second
)

type TickMsg time.Time

// Options configure the live viewer.
type Options struct {
	// Iterations stops the animation after that many steps; 0 runs forever.
	Iterations int
	FPS        int
	OutDir     string
	Log        zerolog.Logger
}

// Model drives a simulator from Bubble Tea ticks and renders its vector.
type Model struct {
	sim       *grover.Simulator
	canvas    *Canvas
	limit     int
	interval  time.Duration
	running   bool
	history   []float64
	lastMean  float64
	recording bool
	frames    []*image.Paletted
	outDir    string
	log       zerolog.Logger
	err       error
}

func NewModel(sim *grover.Simulator, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 10
	}
	return Model{
		sim:      sim,
		canvas:   NewCanvas(width, height),
		limit:    opts.Iterations,
		interval: time.Second / time.Duration(fps),
		running:  true,
		history:  make([]float64, 0, historyCapacity),
		lastMean: sim.Mean(),
		outDir:   opts.OutDir,
		log:      opts.Log,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the simulator once per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running && !m.finished() {
				m.step()
			}
		case "r":
			m.reset()
		case "+", "=":
			m.interval = max(m.interval/2, minInterval)
		case "-", "_":
			m.interval = min(m.interval*2, maxInterval)
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		}
	case TickMsg:
		if m.running && !m.finished() {
			m.step()
			if m.recording {
				m.draw()
				m.frames = append(m.frames, canvasFrame(m.canvas))
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) finished() bool {
	return m.limit > 0 && m.sim.Steps() >= m.limit
}

// step advances the simulator by one Grover iteration.
func (m *Model) step() {
	amp, mean := m.sim.Step()
	m.lastMean = mean
	m.history = append(m.history, amp)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// reset restores the uniform vector.
func (m *Model) reset() {
	m.sim.Reset()
	m.history = m.history[:0]
	m.lastMean = m.sim.Mean()
}

func (m *Model) stopRecording() {
	m.recording = false
	if len(m.frames) == 0 {
		return
	}
	path := filepath.Join(m.outDir, "grover.gif")
	if err := saveGIF(path, m.frames, m.interval); err != nil {
		m.err = err
		m.log.Error().Err(err).Str("path", path).Msg("saving recording failed")
	} else {
		m.log.Info().Str("path", path).Int("frames", len(m.frames)).Msg("recording saved")
	}
	m.frames = nil
}

func (m Model) yDot(v float64) int {
	h := m.canvas.DotsH() - 1
	return int((yLimit - v) / (2 * yLimit) * float64(h))
}

// draw renders the amplitude vector as one bar per dot column.
func (m *Model) draw() {
	m.canvas.Clear()
	v := m.sim.Vector()
	n := len(v)
	w := m.canvas.DotsW()
	zero := m.yDot(0)

	m.canvas.HLine(zero, 2)
	m.canvas.HLine(m.yDot(m.lastMean), 6)

	marked := m.sim.Marked()
	for x := 0; x < w; x++ {
		lo := x * n / w
		hi := (x + 1) * n / w
		i := lo
		if marked >= lo && marked < hi {
			i = marked
		}
		if i >= n {
			i = n - 1
		}
		m.canvas.VLine(x, zero, m.yDot(v[i]))
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(fmt.Sprintf("GROVER  N=%d  marked=%d", m.sim.Size(), m.sim.Marked())) + "\n")

	status := statusRunning.Render("RUNNING")
	switch {
	case m.finished():
		status = statusPaused.Render("DONE")
	case !m.running:
		status = statusPaused.Render("PAUSED")
	}
	if m.recording {
		status += "  " + statusRecording.Render(fmt.Sprintf("REC %d", len(m.frames)))
	}
	s.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(28), asciigraph.Caption("marked amplitude"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	amp := m.sim.Amplitude()
	steps := fmt.Sprintf("%d", m.sim.Steps())
	if m.limit > 0 {
		steps = fmt.Sprintf("%d / %d", m.sim.Steps(), m.limit)
	}
	peaks := len(grover.CollectPeaks(m.sim.Trace()))

	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(steps) + "\n")
	s.WriteString(labelStyle.Render("Amplitude") + valueStyle.Render(fmt.Sprintf("%+.4f", amp)) + "\n")
	s.WriteString(labelStyle.Render("Mean") + valueStyle.Render(fmt.Sprintf("%+.4f", m.lastMean)) + "\n")
	s.WriteString(labelStyle.Render("Norm²") + valueStyle.Render(fmt.Sprintf("%.6f", m.sim.NormSquared())) + "\n")
	s.WriteString(labelStyle.Render("Peaks") + valueStyle.Render(fmt.Sprintf("%d", peaks)) + "\n")
	s.WriteString(labelStyle.Render("Interval") + valueStyle.Render(m.interval.String()) + "\n")
	s.WriteString("\n" + labelStyle.Render("P(marked)") + probabilityBar(amp*amp, 20) + "\n")

	if m.err != nil {
		s.WriteString("\n" + statusRecording.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause N:Step R:Reset\n+/-:Speed G:Record Q:Quit"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

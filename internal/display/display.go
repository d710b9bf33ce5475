// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent status bar (coins, level, energy,
// round timer, combo, queue) and an input prompt at the bottom of the
// terminal. All application output is printed above the rendered area
// via Program.Println / Printf, so concurrent writes never garble the
// display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/engine"
)

const promptText = "quán> "

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#3f2a1d")).
		Foreground(lipgloss.Color("#e7d8c9"))

	coinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	timerRunStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	timerLowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8a29e")).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6c3b0"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#78716c"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6a77a"))

	// BannerStyle is the warm sepia used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6a77a"))

	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fed7aa"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e7e5e4"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8a29e"))

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#d6d3d1"))
)

// lowTime is when the round timer turns red.
const lowTime = 10

// StatusSource supplies the state rendered in the status bar.
type StatusSource interface {
	Snapshot() engine.Snapshot
}

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely
// call [UI.Println], [UI.Printf], and read from [UI.InputChan] at any
// time after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	source  StatusSource
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI(source StatusSource) *UI {
	return &UI{
		source:  source,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe. Falls back to
// fmt.Println before the program starts or after it exits.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt on its own line.
// Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintChat prints a line spoken by the stall or a customer.
func (u *UI) PrintChat(text string) {
	u.Println(chatStyle.Render("  " + text))
}

// PrintHeader prints a section header such as "Bảng xếp hạng".
func (u *UI) PrintHeader(text string) {
	u.Println(headerStyle.Render("  " + text))
}

// PrintLine prints regular body text.
func (u *UI) PrintLine(text string) {
	u.Println(primaryStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an urgent/error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintBlock prints a multi-line block, one styled line at a time.
func (u *UI) PrintBlock(text string) {
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		u.PrintLine(l)
	}
}

// PrintUserInput echoes the player's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render(promptText) + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// Plain-text prompt: styled prompts add ANSI bytes that break the
	// textinput width math for long input.
	ti.Prompt = promptText
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#d6a77a"))
	ti.Focus()
	ti.CharLimit = 300
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		source:  u.source,
		input:   ti,
		inputCh: u.inputCh,
		readyCh: u.readyCh,
		echoFn: func(v string) {
			u.PrintUserInput(v)
		},
	}
	m.refresh()

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	source  StatusSource
	input   textinput.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string)
	snap    engine.Snapshot
	width   int
}

type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

// The bar refreshes faster than the one-second countdown so it never
// lags a visible second behind.
func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Echo from a Cmd so Update never blocks on Println.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := lipgloss.Width(promptText); msg.Width > w {
			m.input.Width = msg.Width - w
		}
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(titleFor(m.snap)))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) refresh() {
	if m.source != nil {
		m.snap = m.source.Snapshot()
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(renderBar(m.snap, m.width))
	b.WriteByte('\n')
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

// titleFor is the terminal window title.
func titleFor(s engine.Snapshot) string {
	if s.State != domain.StatePlaying {
		return "Vintage Vendor"
	}
	return fmt.Sprintf("Vintage Vendor | %ds | %s đ", s.TimeRemaining, humanize.Comma(int64(s.SessionCoins)))
}

// renderBar draws the one-line status bar.
func renderBar(s engine.Snapshot, width int) string {
	p := s.Progress
	parts := []string{
		labelStyle.Render("xu ") + coinStyle.Render(humanize.Comma(int64(p.Coins))+" đ"),
		labelStyle.Render(fmt.Sprintf("cấp %d (%d exp)", p.Level, p.Exp)),
		labelStyle.Render(fmt.Sprintf("năng lượng %d/%d", p.Energy, p.MaxEnergy)),
	}

	switch s.State {
	case domain.StatePlaying:
		timer := fmt.Sprintf("%ds", s.TimeRemaining)
		switch {
		case s.Paused:
			parts = append(parts, pausedStyle.Render("tạm dừng "+timer))
		case s.Accepted && s.TimeRemaining <= lowTime:
			parts = append(parts, timerLowStyle.Render(timer))
		default:
			parts = append(parts, timerRunStyle.Render(timer))
		}
		parts = append(parts,
			labelStyle.Render(fmt.Sprintf("combo x%d", s.Combo)),
			labelStyle.Render(fmt.Sprintf("khách %d/%d", len(s.Customers), s.QueueCapacity)),
		)
	case domain.StateGameOver:
		parts = append(parts, pausedStyle.Render("hết giờ"))
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "
	if width <= 0 {
		width = 80
	}
	return barBg.Width(width).Render(content)
}

// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type renders the machine panel (ingredient gauges, the selected
// drink, the cup and the brew progress bar) above an input prompt. All
// application output is printed above the rendered area via
// Program.Println, so concurrent writes never garble the panel.
package display

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa")).
			Width(7)

	emptyGaugeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3f3f46"))

	ledIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	ledBrewingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fb923c")).
			Bold(true)

	drinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Soft sky blue for machine messages.
	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	// Light zinc for listings.
	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Dimmed zinc for hints and metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// Soft coral for errors and alerts.
	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

// gaugeColors gives every container its own liquid colour.
var gaugeColors = map[domain.Ingredient]lipgloss.Style{
	domain.Water:  lipgloss.NewStyle().Foreground(lipgloss.Color("#7dd3fc")),
	domain.Milk:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f5f5f4")),
	domain.Coffee: lipgloss.NewStyle().Foreground(lipgloss.Color("#a16207")),
	domain.Sugar:  lipgloss.NewStyle().Foreground(lipgloss.Color("#fbcfe8")),
}

const gaugeWidth = 20

// CupState is what the cup on the drip tray shows.
type CupState int

const (
	CupEmpty CupState = iota
	CupBrewing
	CupReady
)

// String returns the cup caption.
func (c CupState) String() string {
	switch c {
	case CupBrewing:
		return "brewing"
	case CupReady:
		return "ready"
	default:
		return "empty"
	}
}

// Messages accepted by the model. They are sent through the UI setters.
type (
	inventoryMsg domain.Inventory
	selectMsg    domain.Recipe
	cupMsg       CupState
	progressMsg  float64
)

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely
// call the setters, [UI.Println], and read from
// [UI.InputChan] at any time; setters called before Run are applied to
// the first frame.
type UI struct {
	mu      sync.Mutex
	program *tea.Program
	queued  []tea.Msg

	inputCh chan string
	readyCh chan struct{}
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI() *UI {
	return &UI{
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
	}
}

// SetInventory redraws the gauges.
func (u *UI) SetInventory(inv domain.Inventory) { u.send(inventoryMsg(inv)) }

// SetSelected shows the chosen drink and empties the cup.
func (u *UI) SetSelected(r domain.Recipe) { u.send(selectMsg(r)) }

// SetCup changes the cup caption and the LED.
func (u *UI) SetCup(state CupState) { u.send(cupMsg(state)) }

// SetProgress moves the progress bar; pct is 0..100.
func (u *UI) SetProgress(pct float64) { u.send(progressMsg(pct)) }

func (u *UI) send(msg tea.Msg) {
	u.mu.Lock()
	if u.program == nil {
		u.queued = append(u.queued, msg)
		u.mu.Unlock()
		return
	}
	p := u.program
	u.mu.Unlock()

	if !u.done.Load() {
		p.Send(msg)
	}
}

// Println prints a line above the panel. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if p := u.running(); p != nil {
		p.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

func (u *UI) running() *tea.Program {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.program == nil || u.done.Load() {
		return nil
	}
	return u.program
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintChat prints a message from the machine.
func (u *UI) PrintChat(text string) {
	u.Println(chatStyle.Render("  " + text))
}

// PrintLine prints a plain listing line.
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

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("brew") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if p := u.running(); p != nil {
		p.Quit()
	}
}

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// Plain-text prompt keeps the textinput width math correct.
	ti.Prompt = "brew> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 36

	var m tea.Model = model{
		input:    ti,
		progress: bar,
		inputCh:  u.inputCh,
		readyCh:  u.readyCh,
		echoFn: func(v string) {
			u.PrintUserInput(v)
		},
	}

	u.mu.Lock()
	for _, msg := range u.queued {
		m, _ = m.Update(msg)
	}
	u.queued = nil
	u.program = tea.NewProgram(m)
	p := u.program
	u.mu.Unlock()

	_, err := p.Run()
	u.done.Store(true)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	input    textinput.Model
	progress progress.Model
	inputCh  chan<- string
	readyCh  chan struct{}
	echoFn   func(string) // prints user input into scrollback

	inv      domain.Inventory
	selected domain.Recipe
	hasDrink bool
	cup      CupState
	pct      float64
	width    int
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		signalReady(m.readyCh),
		tea.SetWindowTitle("OttoBrew"),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
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
				// Echo outside Update so it won't deadlock on msgs.
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
		const promptLen = 6
		if msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen
		}
		return m, nil

	case inventoryMsg:
		m.inv = domain.Inventory(msg)
		return m, nil

	case selectMsg:
		m.selected = domain.Recipe(msg)
		m.hasDrink = true
		m.cup = CupEmpty
		m.pct = 0
		return m, nil

	case cupMsg:
		m.cup = CupState(msg)
		title := "OttoBrew"
		if m.cup == CupBrewing {
			title = "OttoBrew: brewing " + m.selected.Name
		}
		return m, tea.SetWindowTitle(title)

	case progressMsg:
		m.pct = math.Max(0, math.Min(float64(msg), 100))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderPanel())
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderPanel() string {
	var lines []string

	led := ledIdleStyle.Render("●")
	if m.cup == CupBrewing {
		led = ledBrewingStyle.Render("●")
	}
	lines = append(lines, titleStyle.Render("OTTOBREW")+"  "+led, "")

	for _, ing := range domain.Ingredients {
		lines = append(lines, renderGauge(ing, m.inv))
	}
	lines = append(lines, "")

	if m.hasDrink {
		lines = append(lines,
			drinkStyle.Render(m.selected.Name),
			secondaryStyle.Render(m.selected.Description),
		)
	} else {
		lines = append(lines, secondaryStyle.Render("no drink selected"))
	}
	lines = append(lines,
		"",
		labelStyle.Render("cup")+" "+primaryStyle.Render(m.cup.String()),
		m.progress.ViewAs(m.pct/100),
	)

	return panelStyle.Render(strings.Join(lines, "\n"))
}

// renderGauge draws one container as "WATER  ████████░░  400ml  80%".
func renderGauge(ing domain.Ingredient, inv domain.Inventory) string {
	pct := inv.Percent(ing)
	filled := int(math.Round(pct / 100 * gaugeWidth))
	filled = max(0, min(filled, gaugeWidth))

	bar := gaugeColors[ing].Render(strings.Repeat("█", filled)) +
		emptyGaugeStyle.Render(strings.Repeat("░", gaugeWidth-filled))

	return fmt.Sprintf("%s %s %6s %4.0f%%",
		labelStyle.Render(strings.ToUpper(ing.String())),
		bar,
		FormatLevel(ing, inv.Level(ing)),
		pct,
	)
}

// FormatLevel renders a level with its unit, e.g. "400ml" or "12.5g".
func FormatLevel(ing domain.Ingredient, v float64) string {
	return fmt.Sprintf("%g%s", v, ing.Unit())
}

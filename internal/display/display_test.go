package display

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

func TestModelTracksMachineState(t *testing.T) {
	var m tea.Model = model{}

	m, _ = m.Update(inventoryMsg(domain.DefaultInventory()))
	m, _ = m.Update(selectMsg(domain.Recipe{ID: domain.Latte, Name: "Latte"}))
	m, _ = m.Update(cupMsg(CupBrewing))
	m, _ = m.Update(progressMsg(150))

	got := m.(model)
	if got.inv != domain.DefaultInventory() {
		t.Fatalf("inventory = %v", got.inv)
	}
	if !got.hasDrink || got.selected.Name != "Latte" {
		t.Fatalf("selected = %+v", got.selected)
	}
	if got.cup != CupBrewing {
		t.Fatalf("cup = %s, want brewing", got.cup)
	}
	if got.pct != 100 {
		t.Fatalf("progress = %v, want clamped to 100", got.pct)
	}

	// Selecting another drink empties the cup and resets the bar.
	m, _ = m.Update(selectMsg(domain.Recipe{ID: domain.Espresso, Name: "Espresso"}))
	got = m.(model)
	if got.cup != CupEmpty || got.pct != 0 {
		t.Fatalf("after select: cup=%s pct=%v", got.cup, got.pct)
	}
}

func TestEnterSubmitsInput(t *testing.T) {
	ch := make(chan string, 1)
	ti := textinput.New()
	ti.SetValue("brew")

	var echoed string
	m := model{input: ti, inputCh: ch, echoFn: func(v string) { echoed = v }}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := <-ch; got != "brew" {
		t.Fatalf("submitted %q, want brew", got)
	}
	if v := next.(model).input.Value(); v != "" {
		t.Fatalf("input not reset: %q", v)
	}
	if cmd == nil {
		t.Fatal("expected echo command")
	}
	cmd()
	if echoed != "brew" {
		t.Fatalf("echoed %q", echoed)
	}
}

func TestBlankInputIgnored(t *testing.T) {
	ch := make(chan string, 1)
	ti := textinput.New()
	ti.SetValue("   ")
	m := model{input: ti, inputCh: ch}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	select {
	case v := <-ch:
		t.Fatalf("blank input submitted: %q", v)
	default:
	}
}

func TestRenderGauge(t *testing.T) {
	line := renderGauge(domain.Water, domain.DefaultInventory())
	for _, want := range []string{"WATER", "400ml", "80%"} {
		if !strings.Contains(line, want) {
			t.Fatalf("gauge %q missing %q", line, want)
		}
	}
	if n := strings.Count(line, "█"); n != 16 {
		t.Fatalf("filled cells = %d, want 16", n)
	}
}

func TestFormatLevel(t *testing.T) {
	if got := FormatLevel(domain.Coffee, 12.5); got != "12.5g" {
		t.Fatalf("FormatLevel = %q", got)
	}
	if got := FormatLevel(domain.Milk, 0); got != "0ml" {
		t.Fatalf("FormatLevel = %q", got)
	}
}

func TestCentre(t *testing.T) {
	got := centre([]string{"ab", "abcd"}, 10)
	want := "   ab\n   abcd\n"
	if got != want {
		t.Fatalf("centre = %q, want %q", got, want)
	}

	// Narrow terminals get no padding.
	if got := centre([]string{"abcdef"}, 4); got != "abcdef\n" {
		t.Fatalf("centre narrow = %q", got)
	}
}

func TestSettersBeforeRunAreQueued(t *testing.T) {
	u := NewUI()
	u.SetInventory(domain.DefaultInventory())
	u.SetProgress(40)
	if len(u.queued) != 2 {
		t.Fatalf("queued = %d, want 2", len(u.queued))
	}
}

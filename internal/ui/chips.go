package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"selectsearch/internal/ui/theme"
)

// ChipListState represents the current mode of the chip list.
type ChipListState int

const (
	// ChipListInput - normal mode, cursor lives in the scratch field.
	ChipListInput ChipListState = iota
	// ChipListNavigation - a chip has keyboard focus.
	ChipListNavigation
)

// ChipRecord binds one visible chip to a selected value.
type ChipRecord struct {
	Value string
	Label string
}

// leavingChip is a chip in its removal animation. It is no longer part of
// the live chip set; it only exists visually until the animation completes,
// at which point onDone fires and the record is dropped.
type leavingChip struct {
	record  ChipRecord
	originX int
	elapsed time.Duration
	onDone  func()
}

// chipSpan records where a chip was rendered on the last frame, for mouse
// hit-testing during swipe gestures.
type chipSpan struct {
	value string
	x     int
	width int
}

// ChipRemovedMsg is sent when a chip's removal was requested via keyboard or
// gesture. The widget translates it into a selection change.
type ChipRemovedMsg struct {
	Value string
	Label string
}

// ChipNavExitMsg signals the chip list gave keyboard focus back to the
// scratch field. Character carries the key when typing caused the exit.
type ChipNavExitMsg struct {
	Character rune
}

// chipFlashClearMsg clears the duplicate-add flash.
type chipFlashClearMsg struct{}

// chipAnimFrameMsg advances all running removal animations by one frame.
type chipAnimFrameMsg struct{}

const chipAnimFrameInterval = 30 * time.Millisecond

// ChipList manages the removable chips of a multi-select widget: the live
// chip set, keyboard navigation, the duplicate flash, swipe gestures, and
// per-chip removal animation state.
type ChipList struct {
	Width int

	chips      []ChipRecord
	leaving    []leavingChip
	state      ChipListState
	navIndex   int
	focused    bool
	flashIndex int

	swipeOffset int
	animSpeed   time.Duration

	// Swipe gesture tracking.
	dragValue  string
	dragStartX int
	dragDX     int

	spans []chipSpan
}

// NewChipList creates an empty chip list.
func NewChipList(swipeOffset int, animSpeed time.Duration) ChipList {
	return ChipList{
		Width:       40,
		state:       ChipListInput,
		navIndex:    -1,
		flashIndex:  -1,
		swipeOffset: swipeOffset,
		animSpeed:   animSpeed,
	}
}

// WithWidth sets the available width.
func (c ChipList) WithWidth(w int) ChipList {
	c.Width = w
	return c
}

// Update handles messages and returns updated state.
func (c ChipList) Update(msg tea.Msg) (ChipList, tea.Cmd) {
	switch msg := msg.(type) {
	case chipFlashClearMsg:
		c.flashIndex = -1
		return c, nil

	case chipAnimFrameMsg:
		return c.advanceAnimations()

	case tea.MouseMsg:
		return c.handleMouse(msg)

	case tea.KeyMsg:
		if c.state == ChipListNavigation {
			return c.handleNavigationKey(msg)
		}
	}

	return c, nil
}

func (c ChipList) handleNavigationKey(msg tea.KeyMsg) (ChipList, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft:
		if c.navIndex > 0 {
			c.navIndex--
		}
		return c, nil

	case tea.KeyRight:
		if c.navIndex < len(c.chips)-1 {
			c.navIndex++
			return c, nil
		}
		// Past the last chip - focus returns to the scratch field.
		c.ExitNavigation()
		return c, func() tea.Msg { return ChipNavExitMsg{} }

	case tea.KeyBackspace, tea.KeyDelete:
		if c.navIndex < 0 || c.navIndex >= len(c.chips) {
			return c, nil
		}
		removed := c.chips[c.navIndex]
		return c, func() tea.Msg {
			return ChipRemovedMsg{Value: removed.Value, Label: removed.Label}
		}

	case tea.KeyEsc, tea.KeyTab:
		c.ExitNavigation()
		return c, func() tea.Msg { return ChipNavExitMsg{} }

	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			c.ExitNavigation()
			char := msg.Runes[0]
			return c, func() tea.Msg { return ChipNavExitMsg{Character: char} }
		}
	}

	return c, nil
}

// handleMouse tracks horizontal drags over chips. Dragging a chip at least
// swipeOffset cells in either direction requests its removal.
func (c ChipList) handleMouse(msg tea.MouseMsg) (ChipList, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return c, nil
		}
		if value, ok := c.chipAt(msg.X); ok {
			c.dragValue = value
			c.dragStartX = msg.X
			c.dragDX = 0
		}
		return c, nil

	case tea.MouseActionMotion:
		if c.dragValue != "" {
			c.dragDX = msg.X - c.dragStartX
		}
		return c, nil

	case tea.MouseActionRelease:
		if c.dragValue == "" {
			return c, nil
		}
		value := c.dragValue
		dx := c.dragDX
		c.dragValue = ""
		c.dragDX = 0
		if abs(dx) < c.swipeOffset {
			return c, nil
		}
		for _, chip := range c.chips {
			if chip.Value == value {
				removed := chip
				return c, func() tea.Msg {
					return ChipRemovedMsg{Value: removed.Value, Label: removed.Label}
				}
			}
		}
		return c, nil
	}

	return c, nil
}

func (c ChipList) chipAt(x int) (string, bool) {
	for _, span := range c.spans {
		if x >= span.x && x < span.x+span.width {
			return span.value, true
		}
	}
	return "", false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// AddChip adds a value/label pair to the chip list. Returns false on a
// duplicate value; the existing chip is flashed and given keyboard focus
// instead, so re-adding is idempotent at the UI level.
func (c *ChipList) AddChip(value, label string) bool {
	for i, existing := range c.chips {
		if existing.Value == value {
			c.flashIndex = i
			c.state = ChipListNavigation
			c.navIndex = i
			return false
		}
	}
	c.chips = append(c.chips, ChipRecord{Value: value, Label: label})
	return true
}

// RemoveChip moves the chip for value out of the live set and into its
// removal animation. onDone runs when the animation completes. Returns a
// command driving animation frames, or nil if value has no live chip.
func (c *ChipList) RemoveChip(value string, onDone func()) tea.Cmd {
	for i, chip := range c.chips {
		if chip.Value != value {
			continue
		}
		c.chips = append(c.chips[:i], c.chips[i+1:]...)
		c.leaving = append(c.leaving, leavingChip{
			record:  chip,
			originX: c.spanX(value),
			onDone:  onDone,
		})

		if c.state == ChipListNavigation {
			if len(c.chips) == 0 {
				c.ExitNavigation()
			} else if c.navIndex >= len(c.chips) {
				c.navIndex = len(c.chips) - 1
			}
		}
		return chipAnimFrame()
	}
	return nil
}

// RemoveAll moves every live chip into its removal animation at once.
// onDone runs once per chip when its animation completes.
func (c *ChipList) RemoveAll(onDone func(value string)) tea.Cmd {
	if len(c.chips) == 0 {
		return nil
	}
	for _, chip := range c.chips {
		chip := chip
		c.leaving = append(c.leaving, leavingChip{
			record:  chip,
			originX: c.spanX(chip.Value),
			onDone:  func() { onDone(chip.Value) },
		})
	}
	c.chips = nil
	c.ExitNavigation()
	return chipAnimFrame()
}

// DropAll discards every chip immediately, skipping animation. Used by
// destroy, where the injected elements are being removed anyway.
func (c *ChipList) DropAll() {
	c.chips = nil
	c.leaving = nil
	c.ExitNavigation()
}

func (c ChipList) spanX(value string) int {
	for _, span := range c.spans {
		if span.value == value {
			return span.x
		}
	}
	return 0
}

func chipAnimFrame() tea.Cmd {
	return tea.Tick(chipAnimFrameInterval, func(time.Time) tea.Msg {
		return chipAnimFrameMsg{}
	})
}

func (c ChipList) advanceAnimations() (ChipList, tea.Cmd) {
	if len(c.leaving) == 0 {
		return c, nil
	}
	var still []leavingChip
	for _, lc := range c.leaving {
		lc.elapsed += chipAnimFrameInterval
		if lc.elapsed >= c.animSpeed {
			if lc.onDone != nil {
				lc.onDone()
			}
			continue
		}
		still = append(still, lc)
	}
	c.leaving = still
	if len(c.leaving) > 0 {
		return c, chipAnimFrame()
	}
	return c, nil
}

// Animating reports whether any removal animation is running.
func (c ChipList) Animating() bool {
	return len(c.leaving) > 0
}

// Contains reports whether a live chip exists for value.
func (c ChipList) Contains(value string) bool {
	for _, chip := range c.chips {
		if chip.Value == value {
			return true
		}
	}
	return false
}

// Chips returns a copy of the live chip records.
func (c ChipList) Chips() []ChipRecord {
	return append([]ChipRecord(nil), c.chips...)
}

// Count returns the number of live chips.
func (c ChipList) Count() int {
	return len(c.chips)
}

// EnterNavigation gives keyboard focus to the last chip. Returns false if
// there are no chips.
func (c *ChipList) EnterNavigation() bool {
	if len(c.chips) == 0 {
		return false
	}
	c.state = ChipListNavigation
	c.navIndex = len(c.chips) - 1
	return true
}

// ExitNavigation returns keyboard focus to the scratch field.
func (c *ChipList) ExitNavigation() {
	c.state = ChipListInput
	c.navIndex = -1
}

// InNavigationMode reports whether a chip has keyboard focus.
func (c ChipList) InNavigationMode() bool {
	return c.state == ChipListNavigation
}

// FocusedChip returns the chip with keyboard focus, if any.
func (c ChipList) FocusedChip() (ChipRecord, bool) {
	if c.state != ChipListNavigation || c.navIndex < 0 || c.navIndex >= len(c.chips) {
		return ChipRecord{}, false
	}
	return c.chips[c.navIndex], true
}

// Focus focuses the chip list.
func (c *ChipList) Focus() {
	c.focused = true
}

// Blur removes focus and exits navigation mode.
func (c *ChipList) Blur() {
	c.focused = false
	c.ExitNavigation()
}

// NavIndex returns the current navigation index (for testing).
func (c ChipList) NavIndex() int {
	return c.navIndex
}

// FlashIndex returns the current flash index (for testing).
func (c ChipList) FlashIndex() int {
	return c.flashIndex
}

// State returns the current state (for testing).
func (c ChipList) State() ChipListState {
	return c.state
}

// FlashCmd returns a command that clears the duplicate flash after a delay.
func FlashCmd() tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return chipFlashClearMsg{}
	})
}

const flashDuration = 150 * time.Millisecond

// View renders the chip row. Live chips render left to right; leaving chips
// composite on top at their animated horizontal offset, collapsing in width
// as the animation progresses.
func (c *ChipList) View() string {
	if len(c.chips) == 0 && len(c.leaving) == 0 {
		c.spans = nil
		return ""
	}

	var rendered []string
	c.spans = c.spans[:0]
	x := 0
	for i, chip := range c.chips {
		var chipStr string
		switch {
		case c.flashIndex == i:
			chipStr = renderPillChip(chip.Label, chipStateFlash)
		case c.state == ChipListNavigation && i == c.navIndex:
			chipStr = renderPillChip(chip.Label, chipStateHighlight)
		default:
			chipStr = renderPillChip(chip.Label, chipStateNormal)
		}
		w := lipgloss.Width(chipStr)
		c.spans = append(c.spans, chipSpan{value: chip.Value, x: x, width: w})
		x += w + 1
		rendered = append(rendered, chipStr)
	}
	row := strings.Join(rendered, " ")

	if len(c.leaving) == 0 {
		return row
	}

	canvas := NewCanvas(maxInt(c.Width, lipgloss.Width(row)+c.swipeOffset+2), 1)
	canvas.DrawStringAt(0, 0, row)
	for _, lc := range c.leaving {
		progress := float64(lc.elapsed) / float64(c.animSpeed)
		if progress > 1 {
			progress = 1
		}
		offset := int(float64(c.swipeOffset) * progress)
		full := renderPillChip(lc.record.Label, chipStateLeaving)
		width := lipgloss.Width(full)
		shrunk := truncate.String(full, uint(maxInt(1, width-int(float64(width)*progress))))
		canvas.DrawStringAt(lc.originX+offset, 0, shrunk)
	}
	return canvas.Render()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Chip visual states for pill rendering
type chipState int

const (
	chipStateNormal chipState = iota
	chipStateHighlight
	chipStateFlash
	chipStateLeaving
)

// Powerline characters for pill-shaped chips
const (
	pillLeft  = "" // Left half-circle (rounded left edge)
	pillRight = "" // Right half-circle (rounded right edge)
)

// renderPillChip renders a label as a pill-shaped chip using powerline
// glyphs: curved caps around a solid background for the label text.
func renderPillChip(label string, state chipState) string {
	var bgColor, fgColor lipgloss.TerminalColor

	t := theme.Current()
	switch state {
	case chipStateHighlight:
		bgColor = t.BackgroundSecondary()
		fgColor = t.Text()
	case chipStateFlash:
		bgColor = t.Warning()
		fgColor = t.Text()
	case chipStateLeaving:
		bgColor = t.TextMuted()
		fgColor = t.Background()
	default:
		bgColor = t.Info()
		fgColor = t.Background()
	}

	leftCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillLeft)

	labelStyle := lipgloss.NewStyle().
		Foreground(fgColor).
		Background(bgColor)
	if state == chipStateHighlight || state == chipStateFlash {
		labelStyle = labelStyle.Bold(true)
	}
	labelText := labelStyle.Render(label)

	rightCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillRight)

	return leftCap + labelText + rightCap
}

package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notica/notica/internal/config"
)

func newTestModel(t *testing.T, cfg *config.Config) Model {
	t.Helper()
	mm, _ := New(cfg).Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return mm.(Model)
}

func press(m Model, r rune) Model {
	mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return mm.(Model)
}

// frames steps the animation clock n times.
func frames(m Model, n int) Model {
	for i := 0; i < n; i++ {
		mm, _ := m.Update(frameMsg(time.Time{}))
		m = mm.(Model)
	}
	return m
}

// settled presents a banner and runs the entrance to completion.
func settled(t *testing.T, cfg *config.Config) Model {
	t.Helper()
	m := frames(press(newTestModel(t, cfg), 'n'), 30)
	require.Zero(t, m.clock.Running())
	return m
}

func TestPresent_RunsEntranceToRest(t *testing.T) {
	cfg := config.Default()
	m := press(newTestModel(t, cfg), 'n')

	require.NotNil(t, m.presenter)
	require.True(t, m.stage.attached)
	assert.Equal(t, 1, m.clock.Running(), "entrance animation in flight")
	assert.Less(t, m.stage.offset, 0.0, "starts off screen above the top edge")

	m = frames(m, 30)
	assert.Zero(t, m.clock.Running())
	assert.InDelta(t, cfg.Display.EdgeOffset, m.stage.offset, 1e-9)
}

func TestDrag_StretchIsDamped(t *testing.T) {
	cfg := config.Default()
	m := settled(t, cfg)

	m = press(m, 'j')
	assert.Greater(t, m.stage.offset, cfg.Display.EdgeOffset)
	assert.Less(t, m.stage.offset, cfg.Display.EdgeOffset+5,
		"a 30-point pull moves the banner only a sliver")
}

func TestFlick_CompletesSwipePastThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.Interaction.MinSwipeDistance = 1
	m := settled(t, cfg)

	m = press(press(m, 'j'), 'j')
	require.Greater(t, m.stage.offset, cfg.Display.EdgeOffset+1)

	m = press(m, 'f')
	m = frames(m, 25)
	assert.False(t, m.stage.attached, "flick past the distance threshold swipes the banner out")
	assert.Contains(t, m.stage.events, "closed by user")
}

func TestRelease_NearRestPullsBack(t *testing.T) {
	cfg := config.Default()
	m := settled(t, cfg)

	m = press(m, 'j')
	m = press(m, 'r')
	m = frames(m, 30)

	assert.True(t, m.stage.attached, "release without a fling rubber-bands back")
	assert.InDelta(t, cfg.Display.EdgeOffset, m.stage.offset, 0.5)
}

func TestTap_Dismisses(t *testing.T) {
	m := settled(t, config.Default())

	m = press(m, 't')
	m = frames(m, 25)

	assert.False(t, m.stage.attached)
	assert.Contains(t, m.stage.events, "closed by user")
}

func TestUrgencyKey_CyclesSelection(t *testing.T) {
	m := newTestModel(t, config.Default())
	assert.Equal(t, 0, m.urgency)
	m = press(m, 'u')
	assert.Equal(t, 1, m.urgency)
	m = press(press(m, 'u'), 'u')
	assert.Equal(t, 0, m.urgency)
}

func TestView_RendersBannerSummary(t *testing.T) {
	m := settled(t, config.Default())
	view := m.View()
	assert.Contains(t, view, "Demo banner #1")
	assert.Contains(t, view, "state: visible")
}

func TestQuitKey_Quits(t *testing.T) {
	m := newTestModel(t, config.Default())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

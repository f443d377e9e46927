// Package tui implements the interactive strike session.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/nfriedel/flint/internal/draw"
	"github.com/nfriedel/flint/internal/service"
	"github.com/nfriedel/flint/internal/vault"
)

// opTimeout bounds a single service call fired from the UI.
const opTimeout = 30 * time.Second

// panelExcerptLines is how much of each note the panels show.
const panelExcerptLines = 8

// Theme holds the color scheme for the strike display.
type Theme struct {
	Title   lipgloss.Color
	Border  lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Title:   lipgloss.Color("#5FAFD7"), // light blue
	Border:  lipgloss.Color("#585858"), // gray
	Accent:  lipgloss.Color("#D7AF5F"), // amber
	Muted:   lipgloss.Color("#6C6C6C"), // dim gray
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Title).Bold(true)
}

func (t Theme) panelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(width)
}

func (t Theme) promptStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Italic(true)
}

func (t Theme) mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

func (t Theme) successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

// mode selects between browsing the pair and writing a reflection.
type mode int

const (
	modeBrowse mode = iota
	modeWrite
)

// pairMsg carries the result of a draw or swap. On a miss (ok false,
// err nil) miss holds the status line; the previous pair stays active.
type pairMsg struct {
	pair     *service.Pair
	excerptA string
	excerptB string
	ok       bool
	miss     string
	err      error
}

// promptMsg carries the companion question for the displayed pair.
type promptMsg struct {
	prompt string
	err    error
}

// sparkSavedMsg reports a recorded reflection.
type sparkSavedMsg struct {
	path string
	err  error
}

// skipDoneMsg reports a skipped pair.
type skipDoneMsg struct {
	err error
}

// settingsMsg carries the session settings after a toggle.
type settingsMsg struct {
	weighted bool
	muse     bool
	note     string
	err      error
}

// strikeModel is the bubbletea model for a strike session.
type strikeModel struct {
	strike *service.StrikeService
	root   string
	theme  Theme

	mode     mode
	pair     *service.Pair
	excerptA string
	excerptB string
	prompt   string
	musing   bool

	weighted bool
	muse     bool

	input    textarea.Model
	status   string
	sparked  int
	skipped  int
	width    int
	quitting bool
}

// newStrikeModel creates the model. The strike service must already be
// started.
func newStrikeModel(strike *service.StrikeService, root string) strikeModel {
	input := textarea.New()
	input.Placeholder = "What connects these two notes?"
	input.SetHeight(5)

	settings := strike.Settings()

	return strikeModel{
		strike:   strike,
		root:     root,
		theme:    defaultTheme,
		input:    input,
		weighted: settings.WeighOrphans,
		muse:     settings.MuseEnabled,
		width:    80,
		status:   "drawing...",
	}
}

// Init draws the first pair.
func (m strikeModel) Init() tea.Cmd {
	return m.drawCmd()
}

// Update handles messages and returns the updated model.
func (m strikeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(max(20, m.width-4))
		return m, nil

	case tea.KeyPressMsg:
		if m.mode == modeWrite {
			return m.updateWrite(msg)
		}
		return m.updateBrowse(msg)

	case pairMsg:
		m.musing = false
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		if !msg.ok {
			// The session keeps the previous pair on a miss, so does the
			// display.
			m.status = msg.miss
			return m, nil
		}
		m.pair = msg.pair
		m.excerptA = msg.excerptA
		m.excerptB = msg.excerptB
		m.prompt = ""
		m.musing = true
		m.status = ""
		return m, m.museCmd()

	case promptMsg:
		m.musing = false
		if msg.err == nil {
			m.prompt = msg.prompt
		}
		return m, nil

	case sparkSavedMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.sparked++
		m.pair = nil
		m.prompt = ""
		m.status = "spark saved: " + msg.path
		return m, m.drawCmd()

	case skipDoneMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.skipped++
		m.pair = nil
		m.prompt = ""
		m.status = "skipped"
		return m, m.drawCmd()

	case settingsMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.weighted = msg.weighted
		m.muse = msg.muse
		m.status = msg.note
		return m, nil
	}

	return m, nil
}

// updateBrowse handles keys while the pair is on display.
func (m strikeModel) updateBrowse(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "n":
		m.status = "drawing..."
		return m, m.drawCmd()

	case "1":
		if m.pair == nil {
			return m, nil
		}
		m.status = "swapping left..."
		return m, m.swapCmd(draw.SlotA)

	case "2":
		if m.pair == nil {
			return m, nil
		}
		m.status = "swapping right..."
		return m, m.swapCmd(draw.SlotB)

	case "s":
		if m.pair == nil {
			return m, nil
		}
		m.mode = modeWrite
		m.input.Reset()
		m.input.Focus()
		m.status = ""
		return m, nil

	case "k":
		if m.pair == nil {
			return m, nil
		}
		return m, m.skipCmd()

	case "w":
		return m, m.toggleWeightCmd()

	case "m":
		return m, m.toggleMuseCmd()
	}

	return m, nil
}

// updateWrite handles keys while the reflection editor is open.
func (m strikeModel) updateWrite(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		m.status = "reflection discarded"
		return m, nil

	case "ctrl+s":
		reflection := strings.TrimSpace(m.input.Value())
		if reflection == "" {
			m.status = "reflection is empty, nothing saved"
			return m, nil
		}
		m.mode = modeBrowse
		m.input.Blur()
		m.status = "saving..."
		return m, m.recordCmd(reflection)

	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the session.
func (m strikeModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m strikeModel) renderContent() string {
	if m.quitting {
		return m.finalView()
	}

	var b strings.Builder

	header := m.theme.titleStyle().Render("flint strike")
	flags := m.renderFlags()
	b.WriteString(header + "  " + flags + "\n\n")

	if m.pair != nil {
		b.WriteString(m.renderPanels() + "\n")
		b.WriteString(m.renderPrompt() + "\n")
	} else {
		b.WriteString(m.theme.mutedStyle().Render("no pair on the table") + "\n")
	}

	if m.mode == modeWrite {
		b.WriteString("\n" + m.input.View() + "\n")
		b.WriteString(m.theme.mutedStyle().Render("ctrl+s save · esc discard") + "\n")
	} else {
		b.WriteString("\n" + m.theme.mutedStyle().Render(
			"n new pair · 1/2 swap · s spark · k skip · w weight · m muse · q quit") + "\n")
	}

	if m.status != "" {
		style := m.theme.mutedStyle()
		if strings.HasPrefix(m.status, "error:") {
			style = m.theme.errorStyle()
		} else if strings.HasPrefix(m.status, "spark saved") {
			style = m.theme.successStyle()
		}
		b.WriteString(style.Render(m.status) + "\n")
	}

	return b.String()
}

// renderFlags shows session settings and counts in the header.
func (m strikeModel) renderFlags() string {
	var flags []string
	if m.weighted {
		flags = append(flags, "weighted")
	}
	if m.muse {
		flags = append(flags, "muse")
	}
	flags = append(flags, fmt.Sprintf("sparked %d", m.sparked), fmt.Sprintf("skipped %d", m.skipped))
	return m.theme.mutedStyle().Render(strings.Join(flags, " · "))
}

// renderPanels draws the two notes side by side.
func (m strikeModel) renderPanels() string {
	panelWidth := max(24, (m.width-6)/2)

	left := m.renderPanel("1", m.pair.A, m.excerptA, panelWidth)
	right := m.renderPanel("2", m.pair.B, m.excerptB, panelWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m strikeModel) renderPanel(key string, note draw.Candidate, excerpt string, width int) string {
	var b strings.Builder
	b.WriteString(m.theme.titleStyle().Render(note.Title) + "\n")
	b.WriteString(m.theme.mutedStyle().Render(
		fmt.Sprintf("[%s] %s · %d links", key, note.Path, note.Relations)) + "\n")
	if excerpt != "" {
		b.WriteString("\n" + excerpt)
	}
	return m.theme.panelStyle(width).Render(b.String())
}

// renderPrompt shows the companion question under the panels.
func (m strikeModel) renderPrompt() string {
	if m.musing {
		return m.theme.mutedStyle().Render("summoning a question...")
	}
	if m.prompt == "" {
		return ""
	}
	return m.theme.promptStyle().Render(m.prompt)
}

// finalView renders the session summary on quit.
func (m strikeModel) finalView() string {
	summary := fmt.Sprintf("\nsession over: %d sparked, %d skipped\n", m.sparked, m.skipped)
	if m.sparked > 0 {
		return m.theme.successStyle().Render(summary)
	}
	return m.theme.mutedStyle().Render(summary)
}

// drawCmd fetches a fresh pair.
// Runs as a command to keep Update() non-blocking.
func (m strikeModel) drawCmd() tea.Cmd {
	strike, root := m.strike, m.root
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		pair, ok, err := strike.Draw(ctx)
		if err != nil {
			return pairMsg{err: err}
		}
		if !ok {
			return pairMsg{miss: "no candidates - scan the vault or record outcomes to rotate notes out"}
		}
		return pairMsg{
			pair:     pair,
			excerptA: readExcerpt(root, pair.A.Path),
			excerptB: readExcerpt(root, pair.B.Path),
			ok:       true,
		}
	}
}

// swapCmd replaces one side of the pair.
func (m strikeModel) swapCmd(slot draw.Slot) tea.Cmd {
	strike, root := m.strike, m.root
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		pair, ok, err := strike.Swap(ctx, slot)
		if err != nil {
			return pairMsg{err: err}
		}
		if !ok {
			return pairMsg{miss: "no replacement available - spark or skip this pair instead"}
		}
		return pairMsg{
			pair:     pair,
			excerptA: readExcerpt(root, pair.A.Path),
			excerptB: readExcerpt(root, pair.B.Path),
			ok:       true,
		}
	}
}

// museCmd fetches the companion question, which can take a while when
// the muse is enabled.
func (m strikeModel) museCmd() tea.Cmd {
	strike := m.strike
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		prompt, err := strike.PairPrompt(ctx)
		return promptMsg{prompt: prompt, err: err}
	}
}

// recordCmd writes the reflection as a spark note.
func (m strikeModel) recordCmd(reflection string) tea.Cmd {
	strike := m.strike
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		path, err := strike.RecordSpark(ctx, reflection)
		return sparkSavedMsg{path: path, err: err}
	}
}

// skipCmd dismisses the pair.
func (m strikeModel) skipCmd() tea.Cmd {
	strike := m.strike
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		return skipDoneMsg{err: strike.Skip(ctx)}
	}
}

// toggleWeightCmd flips orphan weighting.
func (m strikeModel) toggleWeightCmd() tea.Cmd {
	strike := m.strike
	next := !m.weighted
	muse := m.muse
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		note := "orphan weighting off"
		if next {
			note = "orphan weighting on"
		}
		err := strike.SetWeighted(ctx, next)
		return settingsMsg{weighted: next, muse: muse, note: note, err: err}
	}
}

// toggleMuseCmd flips the muse.
func (m strikeModel) toggleMuseCmd() tea.Cmd {
	strike := m.strike
	next := !m.muse
	weighted := m.weighted
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		note := "muse off"
		if next {
			note = "muse on"
		}
		err := strike.SetMuseEnabled(ctx, next)
		return settingsMsg{weighted: weighted, muse: next, note: note, err: err}
	}
}

// readExcerpt loads the first lines of a note for the panel, an
// unreadable note just renders empty.
func readExcerpt(root, path string) string {
	excerpt, err := vault.Excerpt(root, path, panelExcerptLines)
	if err != nil {
		return ""
	}
	return excerpt
}

// RunStrike runs the interactive strike session. The strike service
// must already be started. Returns when the user quits.
func RunStrike(strike *service.StrikeService, root string) error {
	model := newStrikeModel(strike, root)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("strike UI error: %w", err)
	}
	return nil
}

package tui

import (
	"context"
	"errors"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/carbonroots/carbonroots/internal/engine"
	"github.com/carbonroots/carbonroots/internal/session"
	"github.com/carbonroots/carbonroots/internal/species"
	listview "github.com/carbonroots/carbonroots/internal/tui/list"
)

// Stage is the screen the app is on.
type Stage int

const (
	// StageName asks for the user's name.
	StageName Stage = iota
	// StageCalculator shows the calculator once a name is set.
	StageCalculator
	// StageFatal shows an unrecoverable error, such as a missing dataset.
	StageFatal
	// StageQuitting indicates the application is exiting.
	StageQuitting
)

// Field is the calculator input that receives keystrokes.
type Field int

const (
	FieldSpecies Field = iota
	FieldTrees
	FieldYears
	fieldCount
)

const (
	selectorHeight = 6
	countCharLimit = 6
	nameCharLimit  = 64
	inputWidth     = 12
)

// NameWarning is shown when an empty name is submitted.
const NameWarning = "Please enter a valid name to continue."

// Options configures the calculator defaults.
type Options struct {
	DefaultTrees    int
	DefaultYears    int
	LeaderboardSize int
}

// DefaultOptions returns the built-in calculator defaults.
func DefaultOptions() Options {
	return Options{
		DefaultTrees:    engine.DefaultTrees,
		DefaultYears:    engine.DefaultYears,
		LeaderboardSize: engine.DefaultLeaderboardSize,
	}
}

// tableLoadedMsg is sent when the dataset has been read for the calculator.
type tableLoadedMsg struct {
	table *species.Table
	err   error
}

// calculatedMsg is sent when a calculation cycle completes.
type calculatedMsg struct {
	outcome engine.Outcome
	err     error
}

// Model is the Bubble Tea model for the whole CarbonRoots session.
type Model struct {
	ctx      context.Context
	service  *engine.Service
	identity *session.Identity
	opts     Options

	stage Stage
	err   error

	// Name screen
	nameInput   textinput.Model
	nameWarning string

	// Calculator screen
	table           *species.Table
	selector        *listview.Model[string]
	treesInput      textinput.Model
	yearsInput      textinput.Model
	focus           Field
	calculating     bool
	outcome         *engine.Outcome
	showLeaderboard bool
	leaderboard     []engine.LeaderboardEntry

	width int
}

// NewModel creates the app model. The identity must be fresh (Unset); the
// model owns its transition to Set.
func NewModel(ctx context.Context, service *engine.Service, identity *session.Identity, opts Options) *Model {
	name := textinput.New()
	name.Placeholder = "Your Name"
	name.CharLimit = nameCharLimit
	name.Focus()

	m := &Model{
		ctx:       ctx,
		service:   service,
		identity:  identity,
		opts:      opts,
		stage:     StageName,
		nameInput: name,
		width:     defaultWidth,
	}
	m.treesInput = newCountInput(opts.DefaultTrees)
	m.yearsInput = newCountInput(opts.DefaultYears)
	m.selector = listview.New([]string{}, selectorHeight, renderSpeciesOption)
	return m
}

func newCountInput(value int) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = countCharLimit
	ti.Width = inputWidth
	ti.SetValue(strconv.Itoa(max(value, 1)))
	return ti
}

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Stage returns the current screen.
func (m *Model) Stage() Stage {
	return m.stage
}

// Err returns the error shown on the fatal screen.
func (m *Model) Err() error {
	return m.err
}

// SpeciesOptions returns the selector's options in display order.
func (m *Model) SpeciesOptions() []string {
	return m.selector.Items()
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tableLoadedMsg:
		return m.handleTableLoaded(msg)

	case calculatedMsg:
		return m.handleCalculated(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.stage = StageQuitting
			return m, tea.Quit
		}
		switch m.stage {
		case StageName:
			return m.handleNameKey(msg)
		case StageCalculator:
			return m.handleCalculatorKey(msg)
		case StageFatal:
			if msg.Type == tea.KeyEsc || msg.String() == "q" || msg.Type == tea.KeyEnter {
				m.stage = StageQuitting
				return m, tea.Quit
			}
		case StageQuitting:
		}
	}

	var cmd tea.Cmd
	if m.stage == StageName {
		m.nameInput, cmd = m.nameInput.Update(msg)
	}
	return m, cmd
}

//nolint:exhaustive // Only submit and quit keys are handled here.
func (m *Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stage = StageQuitting
		return m, tea.Quit

	case tea.KeyEnter:
		if err := m.identity.Submit(m.nameInput.Value()); err != nil {
			m.nameWarning = NameWarning
			return m, nil
		}
		m.nameWarning = ""
		m.nameInput.Blur()
		m.stage = StageCalculator
		m.focus = FieldSpecies
		return m, m.loadTable()
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// loadTable re-reads the dataset for the calculator screen.
func (m *Model) loadTable() tea.Cmd {
	ctx, service := m.ctx, m.service
	return func() tea.Msg {
		table, err := service.LoadTable(ctx)
		return tableLoadedMsg{table: table, err: err}
	}
}

func (m *Model) handleTableLoaded(msg tableLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail(msg.err)
		return m, nil
	}
	m.setTable(msg.table)
	return m, nil
}

func (m *Model) setTable(table *species.Table) {
	m.table = table
	m.selector.SetItems(table.Names())
	if m.showLeaderboard {
		m.leaderboard = engine.Leaderboard(table, m.opts.LeaderboardSize)
	}
}

func (m *Model) fail(err error) {
	m.err = err
	m.stage = StageFatal
	m.calculating = false
}

//nolint:exhaustive // Only calculator keys are handled.
func (m *Model) handleCalculatorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.table == nil || m.calculating {
		if msg.String() == "q" {
			m.stage = StageQuitting
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyTab:
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case tea.KeyShiftTab:
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case tea.KeyEnter:
		return m, m.calculate()
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.stage = StageQuitting
			return m, tea.Quit
		case "t":
			m.toggleLeaderboard()
			return m, nil
		}
	}

	switch m.focus {
	case FieldSpecies:
		m.selector.Update(msg)
		return m, nil
	case FieldTrees:
		return m, updateCountInput(&m.treesInput, msg)
	case FieldYears:
		return m, updateCountInput(&m.yearsInput, msg)
	}
	return m, nil
}

func (m *Model) setFocus(f Field) tea.Cmd {
	m.focus = f
	m.treesInput.Blur()
	m.yearsInput.Blur()
	switch f {
	case FieldTrees:
		return m.treesInput.Focus()
	case FieldYears:
		return m.yearsInput.Focus()
	}
	return nil
}

// updateCountInput forwards msg to a numeric input, dropping non-digits.
func updateCountInput(ti *textinput.Model, msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyRunes && !allDigits(msg.Runes) {
		return nil
	}
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	return cmd
}

func allDigits(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(runes) > 0
}

// ParseCount reads a numeric input, clamping blank, zero or unparsable
// values to 1.
func ParseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Scenario returns the scenario currently described by the inputs.
func (m *Model) Scenario() engine.Scenario {
	name, _ := m.selector.SelectedItem()
	return engine.Scenario{
		Species: name,
		Trees:   ParseCount(m.treesInput.Value()),
		Years:   ParseCount(m.yearsInput.Value()),
	}
}

func (m *Model) calculate() tea.Cmd {
	sc := m.Scenario()
	if sc.Species == "" {
		return nil
	}
	m.treesInput.SetValue(strconv.Itoa(sc.Trees))
	m.yearsInput.SetValue(strconv.Itoa(sc.Years))
	m.calculating = true

	ctx, service, identity := m.ctx, m.service, m.identity
	return func() tea.Msg {
		out, err := service.Calculate(ctx, identity, sc)
		return calculatedMsg{outcome: out, err: err}
	}
}

func (m *Model) handleCalculated(msg calculatedMsg) (tea.Model, tea.Cmd) {
	m.calculating = false
	if msg.err != nil {
		if errors.Is(msg.err, session.ErrEmptyName) {
			m.stage = StageName
			m.nameWarning = NameWarning
			return m, m.nameInput.Focus()
		}
		m.fail(msg.err)
		return m, nil
	}

	out := msg.outcome
	m.outcome = &out
	if out.Table != nil {
		m.setTable(out.Table)
	}
	return m, nil
}

func (m *Model) toggleLeaderboard() {
	m.showLeaderboard = !m.showLeaderboard
	if m.showLeaderboard {
		m.leaderboard = engine.Leaderboard(m.table, m.opts.LeaderboardSize)
	} else {
		m.leaderboard = nil
	}
}

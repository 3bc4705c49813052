package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/solarcalc/internal/animate"
	"github.com/rshade/solarcalc/internal/engine"
	"github.com/rshade/solarcalc/internal/geocode"
	"github.com/rshade/solarcalc/internal/logging"
)

// DefaultDebounce is the pause after the last keystroke before an address
// lookup is issued.
const DefaultDebounce = 500 * time.Millisecond

const (
	calculateLabel   = "Calculate Production"
	alertNoLocation  = "Please select a valid address from the list."
	alertFetchPrefix = "Error fetching solar data: "
	alertNoTotals    = "Error: Could not find solar data totals."
	inputWidth       = 12
	addressWidth     = 60
)

// Calculator is the part of the engine the calculator screen drives.
type Calculator interface {
	ResolveAddress(ctx context.Context, query string) ([]engine.AddressCandidate, error)
	Estimate(ctx context.Context, req engine.EstimateRequest) (*engine.YieldReport, error)
}

// CalculatorOptions pre-fill the form.
type CalculatorOptions struct {
	Panel      engine.PanelConfig
	CostPerKWh float64
	Currency   string
	Debounce   time.Duration
}

// focusTarget is a focusable control, in tab order.
type focusTarget int

const (
	focusAddress focusTarget = iota
	focusPeakPower
	focusTilt
	focusOrientation
	focusCost
	focusCalculate
	focusCount
)

func (f focusTarget) next() focusTarget { return (f + 1) % focusCount }
func (f focusTarget) prev() focusTarget { return (f + focusCount - 1) % focusCount }

// debounceMsg fires when the address field has been idle long enough.
type debounceMsg struct {
	seq   int
	query string
}

// candidatesMsg carries the result of an address lookup.
type candidatesMsg struct {
	seq        int
	query      string
	candidates []engine.AddressCandidate
	err        error
}

// estimateDoneMsg carries the result of a yield estimate.
type estimateDoneMsg struct {
	report *engine.YieldReport
	err    error
}

// frameMsg advances the result animation of generation gen.
type frameMsg struct {
	gen int
	at  time.Time
}

// CalculatorModel is the Bubble Tea model for the solar calculator screen.
type CalculatorModel struct {
	ctx  context.Context
	calc Calculator
	opts CalculatorOptions

	// Form
	inputs [focusCalculate]textinput.Model
	focus  focusTarget

	// Address resolution
	candidates     []engine.AddressCandidate
	cursor         int
	showCandidates bool
	querySeq       int
	selection      engine.Selection

	// Estimate in flight
	busy    bool
	loading *LoadingState

	// Blocking alert, empty when none
	alert string

	// Results
	report     *engine.YieldReport
	chart      *Chart
	production animate.CountUp
	savings    animate.CountUp
	animGen    int
	animStart  time.Time
	elapsed    time.Duration

	now      func() time.Time
	width    int
	height   int
	quitting bool
}

// NewCalculatorModel creates the calculator with the address field focused.
func NewCalculatorModel(ctx context.Context, calc Calculator, opts CalculatorOptions) *CalculatorModel {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Currency == "" {
		opts.Currency = "$"
	}

	m := &CalculatorModel{
		ctx:     ctx,
		calc:    calc,
		opts:    opts,
		loading: NewLoadingState(),
		now:     time.Now,
		width:   defaultWidth,
		height:  defaultHeight,
	}

	m.inputs[focusAddress] = newTextInput("Start typing an address...", "", addressWidth)
	m.inputs[focusPeakPower] = newTextInput("4", formatInput(opts.Panel.PeakPowerKW), inputWidth)
	m.inputs[focusTilt] = newTextInput("35", formatInput(opts.Panel.TiltDeg), inputWidth)
	m.inputs[focusOrientation] = newTextInput("180", formatInput(opts.Panel.OrientationDeg), inputWidth)
	m.inputs[focusCost] = newTextInput("0.30", formatInput(opts.CostPerKWh), inputWidth)
	m.inputs[focusAddress].Focus()

	return m
}

func newTextInput(placeholder, value string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.Width = width
	ti.SetValue(value)
	return ti
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Init starts the cursor blink.
func (m *CalculatorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m *CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case debounceMsg:
		return m, m.handleDebounce(msg)

	case candidatesMsg:
		m.handleCandidates(msg)
		return m, nil

	case estimateDoneMsg:
		return m, m.handleEstimateDone(msg)

	case frameMsg:
		return m, m.handleFrame(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		return m, m.loading.Update(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Cursor blink and other input housekeeping.
	if m.focus < focusCalculate {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg processes keyboard input.
//
//nolint:exhaustive // Only handling relevant key types for form navigation.
func (m *CalculatorModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// The alert blocks everything until dismissed.
	if m.alert != "" {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.alert = ""
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyTab:
		return m, m.setFocus(m.focus.next())
	case tea.KeyShiftTab:
		return m, m.setFocus(m.focus.prev())
	case tea.KeyEsc:
		m.showCandidates = false
		return m, nil
	}

	if m.focus == focusAddress && m.showCandidates {
		switch msg.Type {
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown:
			if m.cursor < len(m.candidates)-1 {
				m.cursor++
			}
			return m, nil
		case tea.KeyEnter:
			return m, m.selectCandidate(m.cursor)
		}
	}

	if m.focus == focusCalculate {
		switch {
		case msg.Type == tea.KeyEnter, msg.Type == tea.KeySpace:
			return m, m.calculate()
		case msg.String() == "q":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		return m, m.setFocus(m.focus.next())
	}

	return m, m.updateInput(msg)
}

// updateInput feeds a key to the focused field and schedules a lookup when
// the address text changed.
func (m *CalculatorModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if m.focus == focusAddress {
		if after := m.inputs[focusAddress].Value(); after != before {
			return tea.Batch(cmd, m.addressChanged(after))
		}
	}
	return cmd
}

// addressChanged supersedes any pending lookup and drops a selection the
// text no longer names. Short queries only hide the list.
func (m *CalculatorModel) addressChanged(query string) tea.Cmd {
	m.querySeq++
	if c := m.selection.Candidate(); c != nil && c.DisplayName != query {
		m.selection.Clear()
	}
	if utf8.RuneCountInString(query) < geocode.MinQueryLength {
		m.showCandidates = false
		return nil
	}
	return m.debounceCmd(m.querySeq, query)
}

func (m *CalculatorModel) debounceCmd(seq int, query string) tea.Cmd {
	return tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq, query: query}
	})
}

func (m *CalculatorModel) handleDebounce(msg debounceMsg) tea.Cmd {
	if msg.seq != m.querySeq {
		return nil
	}
	if utf8.RuneCountInString(msg.query) < geocode.MinQueryLength {
		return nil
	}
	return m.lookupCmd(msg.seq, msg.query)
}

// lookupCmd resolves query off the update loop. References are captured so
// the command never touches the model.
func (m *CalculatorModel) lookupCmd(seq int, query string) tea.Cmd {
	ctx, calc := m.ctx, m.calc
	return func() tea.Msg {
		candidates, err := calc.ResolveAddress(ctx, query)
		return candidatesMsg{seq: seq, query: query, candidates: candidates, err: err}
	}
}

func (m *CalculatorModel) handleCandidates(msg candidatesMsg) {
	log := logging.FromContext(m.ctx)

	if msg.seq != m.querySeq {
		log.Debug().
			Ctx(m.ctx).
			Str("component", "tui").
			Str("query", msg.query).
			Msg("dropping stale address lookup")
		return
	}

	if msg.err != nil {
		log.Warn().
			Ctx(m.ctx).
			Str("component", "tui").
			Str("query", msg.query).
			Err(msg.err).
			Msg("address lookup failed")
		m.candidates = nil
		m.showCandidates = false
		return
	}

	m.candidates = msg.candidates
	m.cursor = 0
	m.showCandidates = len(msg.candidates) > 0 && m.focus == focusAddress
}

// selectCandidate stores the choice and moves focus to the Calculate button.
func (m *CalculatorModel) selectCandidate(i int) tea.Cmd {
	if i < 0 || i >= len(m.candidates) {
		return nil
	}
	c := m.candidates[i]
	m.selection.Set(c)
	m.inputs[focusAddress].SetValue(c.DisplayName)
	m.showCandidates = false
	// Any lookup still pending belongs to text the user has moved past.
	m.querySeq++
	return m.setFocus(focusCalculate)
}

// setFocus moves focus; leaving the address field dismisses the list.
func (m *CalculatorModel) setFocus(f focusTarget) tea.Cmd {
	if f != focusAddress {
		m.showCandidates = false
	}
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = f
	if f < focusCalculate {
		return m.inputs[f].Focus()
	}
	return nil
}

// calculate starts an estimate. Presses while one is running are ignored.
func (m *CalculatorModel) calculate() tea.Cmd {
	if m.busy {
		return nil
	}

	loc, ok := m.selection.Location()
	if !ok {
		m.alert = alertNoLocation
		return nil
	}

	panel, err := m.panelInput()
	if err != nil {
		m.alert = capitalize(err.Error())
		return nil
	}

	req := engine.EstimateRequest{
		Location:   &loc,
		Panel:      panel,
		CostPerKWh: engine.ParseCost(m.inputs[focusCost].Value()),
	}

	m.busy = true
	m.loading = NewLoadingState()
	return tea.Batch(m.loading.Init(), m.estimateCmd(req))
}

func (m *CalculatorModel) estimateCmd(req engine.EstimateRequest) tea.Cmd {
	ctx, calc := m.ctx, m.calc
	return func() tea.Msg {
		report, err := calc.Estimate(ctx, req)
		return estimateDoneMsg{report: report, err: err}
	}
}

// panelInput parses the panel fields.
func (m *CalculatorModel) panelInput() (engine.PanelConfig, error) {
	fields := []struct {
		target focusTarget
		label  string
	}{
		{focusPeakPower, "peak power"},
		{focusTilt, "tilt"},
		{focusOrientation, "orientation"},
	}

	var values [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[f.target].Value()), 64)
		if err != nil {
			return engine.PanelConfig{}, fmt.Errorf("%w: %s must be a number", engine.ErrInvalidPanel, f.label)
		}
		values[i] = v
	}

	panel := engine.PanelConfig{PeakPowerKW: values[0], TiltDeg: values[1], OrientationDeg: values[2]}
	if err := panel.Validate(); err != nil {
		return engine.PanelConfig{}, err
	}
	return panel, nil
}

func (m *CalculatorModel) handleEstimateDone(msg estimateDoneMsg) tea.Cmd {
	m.busy = false

	err := msg.err
	if err == nil && msg.report == nil {
		err = engine.ErrTotalsNotFound
	}
	if err != nil {
		logging.FromContext(m.ctx).Error().
			Ctx(m.ctx).
			Str("component", "tui").
			Bool("totals_missing", errors.Is(err, engine.ErrTotalsNotFound)).
			Err(err).
			Msg("yield estimate failed")
		if errors.Is(err, engine.ErrTotalsNotFound) {
			m.alert = alertNoTotals
		} else {
			m.alert = alertFetchPrefix + err.Error()
		}
		return nil
	}

	m.report = msg.report
	m.animGen++
	m.chart = NewChart(m.animGen, msg.report.MonthlyEnergyKWh)
	m.production = animate.NewCountUp(msg.report.YearlyEnergyKWh)
	m.savings = animate.NewCountUp(msg.report.YearlySavings)
	m.animStart = m.now()
	m.elapsed = 0
	return m.frameCmd(m.animGen)
}

func (m *CalculatorModel) frameCmd(gen int) tea.Cmd {
	return tea.Tick(animate.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}

// handleFrame advances the animation. Frames from a replaced result are
// dropped so two animations never interleave.
func (m *CalculatorModel) handleFrame(msg frameMsg) tea.Cmd {
	if msg.gen != m.animGen {
		return nil
	}
	m.elapsed = msg.at.Sub(m.animStart)
	if m.production.Done(m.elapsed) {
		return nil
	}
	return m.frameCmd(msg.gen)
}

func (m *CalculatorModel) progress() float64 {
	return animate.Progress(m.elapsed, animate.DefaultDuration)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[size:]
}

package tui

import (
	"log"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pengelbrecht/stretchy/internal/geometry"
	"github.com/pengelbrecht/stretchy/internal/page"
	"github.com/pengelbrecht/stretchy/internal/pageview"
)

func init() {
	// Force TrueColor for terminals that misreport capabilities (e.g., TERM=screen in tmux)
	os.Setenv("COLORTERM", "truecolor")
}

const (
	// Rows scrolled per mouse wheel notch.
	wheelRows = 3

	// Columns the container moves per horizontal wheel notch.
	wheelColumns = 4

	// Quiet period after which a horizontal wheel gesture ends.
	wheelIdle = 150 * time.Millisecond
)

// Config holds TUI configuration.
type Config struct {
	Pages         []page.Page
	VisibleTitles int
	FirstIndex    int
	Chrome        geometry.Chrome

	// UpdateNotice is shown in the footer when set.
	UpdateNotice string
}

// Message types.
type (
	// frameMsg advances animations by one frame.
	frameMsg time.Time

	// wheelEndMsg ends a horizontal wheel gesture if no newer wheel event
	// arrived in the meantime.
	wheelEndMsg struct{ seq int }
)

// dragState tracks an interactive mouse drag of the page container.
type dragState struct {
	startX int
	origin float64
}

// Model is the Bubble Tea model for a stretchy paged view.
type Model struct {
	ctrl   *pageview.Controller
	screen *screen
	chrome geometry.Chrome

	// UI state
	keys     KeyMap
	help     help.Model
	showHelp bool
	notice   string
	quitting bool

	// Animation and gesture state
	ticking  bool
	drag     *dragState
	wheeling bool
	wheelSeq int

	// Dimensions
	width  int
	height int
	ready  bool
}

// New creates a model and installs its pages. Layout happens on the first
// window size message.
func New(cfg Config) Model {
	scr := newScreen(cfg.Chrome.AnimationDuration)
	ctrl := pageview.New(scr, cfg.Chrome, geometry.Size{})
	ctrl.OnPageChanged(func(from, to page.Entry) {
		log.Printf("tui: active page %q -> %q", from.Page.Title(), to.Page.Title())
	})
	ctrl.SetPages(cfg.Pages, cfg.VisibleTitles, cfg.FirstIndex)

	h := help.New()
	h.Styles.ShortKey = footerStyle.Bold(true)
	h.Styles.ShortDesc = footerStyle
	h.Styles.ShortSeparator = footerStyle
	h.Styles.FullKey = footerStyle.Bold(true)
	h.Styles.FullDesc = footerStyle
	h.Styles.FullSeparator = footerStyle

	return Model{
		ctrl:   ctrl,
		screen: scr,
		chrome: cfg.Chrome,
		keys:   DefaultKeyMap(),
		help:   h,
		notice: cfg.UpdateNotice,
	}
}

// Init returns the initial command for the model. Frames start with the
// first window size message.
func (m Model) Init() tea.Cmd {
	return nil
}

// Controller returns the page view controller driven by the model.
func (m Model) Controller() *pageview.Controller {
	return m.ctrl
}

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.layout()
		return m, m.scheduleFrame()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case frameMsg:
		m.ticking = false
		m.stepFrame()
		return m, m.scheduleFrame()

	case wheelEndMsg:
		if msg.seq == m.wheelSeq && m.wheeling {
			m.wheeling = false
			m.endDrag()
		}
		return m, m.scheduleFrame()
	}

	return m, nil
}

// -----------------------------------------------------------------------------
// Layout
// -----------------------------------------------------------------------------

// layout resizes every page body and then the controller.
func (m *Model) layout() {
	body := m.bodyViewportHeight()
	for _, e := range m.ctrl.Pages() {
		if p, ok := e.Page.(*DemoPage); ok {
			p.Resize(m.width, body)
		}
	}
	m.ctrl.Resize(geometry.Size{Width: float64(m.width), Height: float64(m.height)})
}

// bodyViewportHeight is the page body height with the header closed.
func (m Model) bodyViewportHeight() int {
	p := m.ctrl.Params()
	return max(m.height-int(math.Round(p.HeaderMinHeight))-m.footerHeight(), 1)
}

// -----------------------------------------------------------------------------
// Keys
// -----------------------------------------------------------------------------

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.ctrl.Teardown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		if m.ready {
			m.layout()
		}

	case key.Matches(msg, m.keys.NextPage):
		m.scrollContainerTo(m.ctrl.Next())

	case key.Matches(msg, m.keys.PrevPage):
		m.scrollContainerTo(m.ctrl.Prev())

	case key.Matches(msg, m.keys.JumpPage):
		m.selectTitle(int(msg.String()[0] - '1'))

	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollActive(1)

	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollActive(-1)

	case key.Matches(msg, m.keys.PageDown):
		m.scrollActive(float64(m.bodyViewportHeight() / 2))

	case key.Matches(msg, m.keys.PageUp):
		m.scrollActive(-float64(m.bodyViewportHeight() / 2))

	case key.Matches(msg, m.keys.Top):
		if p := m.activePage(); p != nil {
			p.ScrollToTop()
		}

	case key.Matches(msg, m.keys.Bottom):
		if p := m.activePage(); p != nil {
			p.ScrollToBottom()
		}

	case key.Matches(msg, m.keys.Open):
		m.ctrl.Open()

	case key.Matches(msg, m.keys.Close):
		m.ctrl.Close()
	}

	return m, m.scheduleFrame()
}

// -----------------------------------------------------------------------------
// Mouse
// -----------------------------------------------------------------------------

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelUp:
		if msg.Action != tea.MouseActionPress {
			break
		}
		dir := 1.0
		if msg.Button == tea.MouseButtonWheelUp {
			dir = -1
		}
		if msg.Shift {
			return m, m.wheelContainer(dir)
		}
		m.scrollActive(dir * wheelRows)

	case tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		if msg.Action != tea.MouseActionPress {
			break
		}
		dir := 1.0
		if msg.Button == tea.MouseButtonWheelLeft {
			dir = -1
		}
		return m, m.wheelContainer(dir)

	case tea.MouseButtonLeft:
		switch msg.Action {
		case tea.MouseActionPress:
			if i, ok := m.titleAt(msg.X, msg.Y); ok {
				m.selectTitle(i)
				break
			}
			if msg.Y >= m.headerRows() {
				m.beginDrag(msg.X)
			}
		case tea.MouseActionMotion:
			m.dragTo(msg.X)
		case tea.MouseActionRelease:
			m.endDrag()
		}

	case tea.MouseButtonNone:
		if msg.Action == tea.MouseActionRelease {
			m.endDrag()
		}
	}

	return m, m.scheduleFrame()
}

// titleAt maps a click to the title cell under it.
func (m Model) titleAt(x, y int) (int, bool) {
	p := m.ctrl.Params()
	rows := m.headerRows()
	strip := int(math.Round(p.TitleStripHeight))
	if y < rows-strip || y >= rows || p.TitleCellWidth <= 0 {
		return 0, false
	}
	i := int(math.Floor((float64(x) + m.screen.titleOffset) / p.TitleCellWidth))
	if i < 0 || i >= p.PageCount {
		return 0, false
	}
	return i, true
}

// -----------------------------------------------------------------------------
// Page container gestures
// -----------------------------------------------------------------------------

// beginDrag grabs the container. A running settle or programmatic scroll
// stops where it is and never completes underneath the drag.
func (m *Model) beginDrag(x int) {
	c := &m.screen.container
	c.stop()
	m.wheeling = false
	m.drag = &dragState{startX: x, origin: c.x}
	m.ctrl.BeginDrag()
}

func (m *Model) dragTo(x int) {
	if m.drag == nil {
		return
	}
	c := &m.screen.container
	c.drag(m.drag.origin-float64(x-m.drag.startX), m.ctrl.Params().MaxOffset())
	m.ctrl.ContainerScrolled(c.x)
}

// endDrag releases the container and lets it settle on a page. A drag of
// more than a quarter page advances in the drag direction.
func (m *Model) endDrag() {
	if m.drag == nil {
		return
	}
	origin := m.drag.origin
	m.drag = nil

	p := m.ctrl.Params()
	index := settleIndex(p, origin, m.screen.container.x)

	m.ctrl.EndDrag(true)
	m.screen.container.animateTo(p.PageOffset(index), motionSettle)
}

// settleIndex picks the page a drag from origin to x settles on.
func settleIndex(p geometry.Params, origin, x float64) int {
	w := p.Viewport.Width
	if w <= 0 {
		return 0
	}
	from := int(math.Round(origin / w))
	switch delta := x - origin; {
	case delta > w/4:
		return p.ClampIndex(max(from+1, int(math.Round(x/w))))
	case delta < -w/4:
		return p.ClampIndex(min(from-1, int(math.Round(x/w))))
	default:
		return p.ClampIndex(int(math.Round(x / w)))
	}
}

// wheelContainer moves the container by one horizontal wheel notch and
// schedules the end of the gesture.
func (m *Model) wheelContainer(dir float64) tea.Cmd {
	c := &m.screen.container
	if !m.wheeling {
		c.stop()
		m.wheeling = true
		m.drag = &dragState{origin: c.x}
		m.ctrl.BeginDrag()
	}
	c.drag(c.x+dir*wheelColumns, m.ctrl.Params().MaxOffset())
	m.ctrl.ContainerScrolled(c.x)

	m.wheelSeq++
	seq := m.wheelSeq
	return tea.Tick(wheelIdle, func(time.Time) tea.Msg { return wheelEndMsg{seq: seq} })
}

// scrollContainerTo starts a programmatic scroll towards x.
func (m *Model) scrollContainerTo(x float64) {
	m.drag = nil
	m.wheeling = false
	m.screen.container.animateTo(x, motionProgrammatic)
}

func (m *Model) selectTitle(i int) {
	if i < 0 || i >= m.ctrl.Params().PageCount {
		return
	}
	m.scrollContainerTo(m.ctrl.SelectTitle(i))
}

// -----------------------------------------------------------------------------
// Vertical scrolling
// -----------------------------------------------------------------------------

func (m Model) activePage() *DemoPage {
	e, ok := m.ctrl.Active()
	if !ok {
		return nil
	}
	p, _ := e.Page.(*DemoPage)
	return p
}

func (m *Model) scrollActive(dy float64) {
	if p := m.activePage(); p != nil {
		p.ScrollBy(dy)
	}
}

// -----------------------------------------------------------------------------
// Frames
// -----------------------------------------------------------------------------

// stepFrame advances the container spring and reports its motion.
func (m *Model) stepFrame() {
	c := &m.screen.container
	if !c.moving() {
		return
	}
	arrived, finished := c.step()
	if !arrived {
		m.ctrl.ContainerScrolled(c.x)
		return
	}
	switch finished {
	case motionSettle:
		m.ctrl.DidEndDecelerating(c.x)
	case motionProgrammatic:
		m.ctrl.DidEndScrollingAnimation(c.x)
	}
}

// animating reports whether another frame is needed.
func (m Model) animating() bool {
	return m.screen.container.moving() || m.screen.headerAnimating()
}

// scheduleFrame starts the frame loop unless it is running or idle.
func (m *Model) scheduleFrame() tea.Cmd {
	if m.ticking || !m.animating() {
		return nil
	}
	m.ticking = true
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return frameMsg(t) })
}

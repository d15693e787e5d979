package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/pengelbrecht/stretchy/internal/geometry"
	"github.com/pengelbrecht/stretchy/internal/header"
)

// View renders the current model state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready || m.width == 0 || m.height == 0 {
		return "Loading...\n"
	}

	p := m.ctrl.Params()
	footer := m.renderFooter()
	footerRows := lipgloss.Height(footer)

	rows := m.renderHeader(p)
	rows = append(rows, m.renderBody(m.height-len(rows)-footerRows)...)
	return strings.Join(rows, "\n") + "\n" + footer
}

// headerRows is the displayed header height in rows.
func (m Model) headerRows() int {
	h := int(math.Round(m.screen.headerHeight()))
	return min(max(h, 0), max(m.height-m.footerHeight(), 0))
}

func (m Model) footerHeight() int {
	return lipgloss.Height(m.renderFooter())
}

// -----------------------------------------------------------------------------
// Header
// -----------------------------------------------------------------------------

// renderHeader renders the top bar, the visible part of the info panel and
// the title strip with its cursor.
func (m Model) renderHeader(p geometry.Params) []string {
	total := m.headerRows()
	top := int(math.Round(p.TopBarHeight))
	strip := int(math.Round(p.TitleStripHeight))
	cursor := min(int(math.Round(m.screen.cursorHeight)), strip)
	info := max(total-top-strip, 0)

	t := m.screen.infoTransform(p)

	rows := make([]string, 0, total)
	for i := 0; i < top; i++ {
		if i == 0 {
			rows = append(rows, m.renderTopBar(p, t))
			continue
		}
		rows = append(rows, topBarStyle.Width(m.width).Render(""))
	}
	rows = append(rows, m.renderInfo(p, t, info)...)
	for i := 0; i < strip-cursor; i++ {
		if i == 0 {
			rows = append(rows, m.renderTitles(p))
			continue
		}
		rows = append(rows, blank(m.width))
	}
	for i := 0; i < cursor; i++ {
		rows = append(rows, m.renderCursor())
	}

	if len(rows) > total {
		rows = rows[len(rows)-total:]
	}
	return rows
}

// renderTopBar renders the app name, the active page badge and the page
// counter. The badge fades with the header background.
func (m Model) renderTopBar(p geometry.Params, t header.Transform) string {
	left := appNameStyle.Render(" stretchy")
	count := pageCountStyle.Render(fmt.Sprintf(" %d/%d ", m.ctrl.ActiveIndex()+1, p.PageCount))

	var badge string
	if b := m.screen.info.Badge; b != "" && m.screen.infoVisible {
		badge = lipgloss.NewStyle().
			Foreground(fade(hexPeach, hexMantle, t.BackgroundOpacity)).
			Background(colorMantle).
			Render(b)
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(badge)-lipgloss.Width(count), 0)
	line := left + topBarStyle.Render(strings.Repeat(" ", gap)) + badge + count
	return fit(line, m.width)
}

// renderInfo renders rows of the info panel. The panel content is laid out
// at its full height and slid up by the transform's translation, so a
// shrinking header reveals its bottom rows only.
func (m Model) renderInfo(p geometry.Params, t header.Transform, rows int) []string {
	if rows <= 0 {
		return nil
	}
	out := make([]string, 0, rows)

	info := m.screen.info
	if !m.screen.infoVisible || info.IsZero() {
		for i := 0; i < rows; i++ {
			out = append(out, blank(m.width))
		}
		return out
	}

	static := max(int(math.Round(p.HeaderMaxHeight-p.HeaderMinHeight)), rows)
	box := m.infoBox(t, static)
	shift := min(max(int(math.Round(-t.TranslateY)), 0), static-rows)
	return append(out, box[shift:shift+rows]...)
}

// infoBox lays out the info payload in height rows, centered, inset by the
// transform's scale and faded by its opacity.
func (m Model) infoBox(t header.Transform, height int) []string {
	info := m.screen.info
	inset := max(int(math.Round((1-t.Scale)*float64(m.width)/2)), 0)
	avail := max(m.width-2*inset, 1)

	var content []string
	if info.Title != "" {
		content = append(content, lipgloss.NewStyle().
			Bold(true).
			Foreground(fade(hexText, hexBase, t.Opacity)).
			Render(info.Title))
	}
	if info.Subtitle != "" {
		content = append(content, lipgloss.NewStyle().
			Foreground(fade(hexSubtext, hexBase, t.Opacity)).
			Render(info.Subtitle))
	}
	if info.Badge != "" {
		content = append(content, lipgloss.NewStyle().
			Foreground(fade(hexBlue, hexBase, t.Opacity)).
			Render("["+info.Badge+"]"))
	}

	box := make([]string, height)
	first := max((height-len(content))/2, 0)
	for i := range box {
		k := i - first
		if k < 0 || k >= len(content) {
			box[i] = blank(m.width)
			continue
		}
		line := strings.Repeat(" ", inset) + lipgloss.PlaceHorizontal(avail, lipgloss.Center, content[k])
		box[i] = fit(line, m.width)
	}
	return box
}

// renderTitles renders the whole title strip and cuts the window at the
// strip offset.
func (m Model) renderTitles(p geometry.Params) string {
	cell := p.TitleCellWidth
	var b strings.Builder
	for i, title := range m.screen.titles {
		start := int(math.Round(float64(i) * cell))
		end := int(math.Round(float64(i+1) * cell))
		w := end - start
		if w <= 0 {
			continue
		}

		label := truncate.StringWithTail(strings.ToUpper(title), uint(max(w-2, 1)), "…")
		style := titleStyle
		if i == m.screen.emphasized {
			style = titleActiveStyle
		}
		b.WriteString(fit(lipgloss.PlaceHorizontal(w, lipgloss.Center, style.Render(label)), w))
	}

	off := int(math.Round(m.screen.titleOffset))
	return fit(ansi.Cut(b.String(), off, off+m.width), m.width)
}

// renderCursor renders one cursor row.
func (m Model) renderCursor() string {
	lead := int(math.Round(m.screen.cursorLeading))
	w := max(int(math.Round(m.screen.cursorWidth)), 1)
	bar := cursorStyle.Render(strings.Repeat("━", w))
	if lead < 0 {
		return fit(ansi.Cut(bar, -lead, w), m.width)
	}
	return fit(strings.Repeat(" ", lead)+bar, m.width)
}

// -----------------------------------------------------------------------------
// Body
// -----------------------------------------------------------------------------

// renderBody renders the page container. Between pages the neighbouring
// page bodies are joined and cut at the container offset.
func (m Model) renderBody(rows int) []string {
	if rows <= 0 || m.width <= 0 {
		return nil
	}
	x := max(int(math.Round(m.screen.container.x)), 0)
	left := x / m.width
	frac := x - left*m.width

	a := m.pageRows(left, rows)
	if frac == 0 {
		return a
	}
	b := m.pageRows(left+1, rows)
	out := make([]string, rows)
	for i := range out {
		out[i] = ansi.Cut(a[i]+b[i], frac, frac+m.width)
	}
	return out
}

// pageRows renders rows of the page at index, padded to the body size.
func (m Model) pageRows(index, rows int) []string {
	var lines []string
	if e, ok := m.ctrlPage(index); ok {
		lines = e.Rows(rows)
	}
	out := make([]string, rows)
	for i := range out {
		if i < len(lines) {
			out[i] = fit(lines[i], m.width)
		} else {
			out[i] = blank(m.width)
		}
	}
	return out
}

func (m Model) ctrlPage(index int) (*DemoPage, bool) {
	pages := m.ctrl.Pages()
	if index < 0 || index >= len(pages) {
		return nil, false
	}
	p, ok := pages[index].Page.(*DemoPage)
	return p, ok
}

// -----------------------------------------------------------------------------
// Footer
// -----------------------------------------------------------------------------

func (m Model) renderFooter() string {
	helpView := m.help.View(m.keys)
	if m.notice == "" {
		return helpView
	}
	return noticeStyle.Render(m.notice) + "\n" + helpView
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	w := ansi.StringWidth(s)
	switch {
	case w > width:
		return ansi.Truncate(s, width, "")
	case w < width:
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func blank(width int) string {
	return strings.Repeat(" ", max(width, 0))
}

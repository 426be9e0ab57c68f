package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"

	"github.com/scrimkit/scrim/pkg/dom"
	"github.com/scrimkit/scrim/pkg/modal"
)

// Modal box layout constants.
const (
	modalBoxMaxWidth  = 60 // maximum modal box width in columns
	modalBoxMaxHeight = 18 // maximum modal box height in rows
	modalBoxMargin    = 4  // margin from screen edges
	modalBoxPadding   = 6  // border and padding inside the box
	modalBoxChrome    = 5  // rows for title, help, and spacing
	summaryMaxLen     = 40 // content summary truncation in the region table
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	sections := []string{
		bannerStyle.Render(banner),
		m.renderRegion(),
		"",
		helpStyle.Render(m.helpLine()),
	}
	if m.err != nil {
		sections = append(sections, errStyle.Render("✘ "+m.err.Error()))
	}
	mainView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Overlay the compose form.
	if m.state == stateComposing && m.form != nil {
		formContent := lipglossv2.JoinVertical(
			lipglossv2.Left,
			modalTitleStyle.Render("Compose Modal"),
			"",
			m.form.Form().View(),
		)
		return overlay(mainView, modalStyle.Render(formContent), w, h)
	}

	// Overlay the topmost modal.
	if top := m.topmost(); top != nil {
		return overlay(mainView, m.renderModalBox(top, w), w, h)
	}

	return mainView
}

// renderRegion renders the live modal listing derived from the region.
func (m Model) renderRegion() string {
	mods := modal.AcquireRegion(m.page).Modals()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Region"))
	b.WriteString("\n")

	if len(mods) == 0 {
		b.WriteString(subtleStyle.Render("  no active modals, spawn one with t/m/i/n"))
		return b.String()
	}

	for i, mod := range mods {
		b.WriteString(m.renderModalRow(i, mod))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderModalRow(idx int, mod *modal.Modal) string {
	stateStr := visibleStyle.Render(mod.State().String())
	if mod.State() == modal.StateClosing {
		stateStr = closingStyle.Render(mod.State().String())
	}

	return fmt.Sprintf("  %d. %s %s %s %s",
		idx+1,
		subtleStyle.Render(mod.ID()),
		stateStr,
		subtleStyle.Render(opacityBar(mod.Opacity())),
		summaryStyle.Render(m.contentSummary(mod)),
	)
}

// modalBody builds the displayable content for a modal's box.
func (m Model) modalBody(mod *modal.Modal, width int) string {
	if mod.Content().Data == "img" {
		return "🖼  " + dom.Attr(mod.Content(), "src")
	}
	if raw, ok := m.markdown[mod.ID()]; ok {
		return renderMarkdown(raw, m.cfg.MarkdownStyle, width)
	}
	return dom.Text(mod.Content())
}

// renderModalBox renders the topmost modal's content box, with the border
// shade tracking the cover's current opacity. Content scrolls through the
// viewport once it has been synced to this modal.
func (m Model) renderModalBox(mod *modal.Modal, screenWidth int) string {
	boxWidth := min(screenWidth-modalBoxMargin, modalBoxMaxWidth)
	contentWidth := boxWidth - modalBoxPadding

	body := m.modalBody(mod, contentWidth)
	scrollInfo := ""
	if m.vpFor == mod.ID() {
		body = m.vp.View()
		if m.vp.TotalLineCount() > m.vp.VisibleLineCount() {
			scrollInfo = fmt.Sprintf(" (%.0f%%)", m.vp.ScrollPercent()*100)
		}
	}

	title := fmt.Sprintf("Modal %s · %.0f%%%s", mod.ID(), mod.Opacity()*100, scrollInfo)
	content := lipglossv2.JoinVertical(
		lipglossv2.Left,
		modalTitleStyle.Render(title),
		"",
		lipglossv2.NewStyle().Width(contentWidth).Render(body),
		modalHelpStyle.Render("[↑/↓] scroll  [c] cover click  [x] content click  [esc] close"),
	)

	return modalStyle.
		BorderForeground(shadeFor(mod.Opacity())).
		Render(content)
}

// overlay centers box over background using a layer compositor, so the
// background remains visible around it.
func overlay(background, box string, width, height int) string {
	bgLayer := lipglossv2.NewLayer(background)
	boxLayer := lipglossv2.NewLayer(box)

	boxW := lipglossv2.Width(box)
	boxH := lipglossv2.Height(box)
	centerX := (width - boxW) / 2
	centerY := (height - boxH) / 2
	boxLayer.X(centerX).Y(centerY).Z(1)

	compositor := lipglossv2.NewCompositor(bgLayer, boxLayer)
	return compositor.Render()
}

// contentSummary produces the short content description shown in the region
// table.
func (m Model) contentSummary(mod *modal.Modal) string {
	if mod.Content().Data == "img" {
		return "img: " + dom.Attr(mod.Content(), "src")
	}
	if _, ok := m.markdown[mod.ID()]; ok {
		return "md: " + truncate(firstLine(m.markdown[mod.ID()]), summaryMaxLen)
	}

	text := dom.Text(mod.Content())
	if text == "" {
		return subtleStyle.Render("(empty)")
	}
	return truncate(firstLine(text), summaryMaxLen)
}

// helpLine builds the help text from the configured keybindings.
func (m Model) helpLine() string {
	keys := make([]string, 0, len(m.cfg.Keybindings))
	for k := range m.cfg.Keybindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+2)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("[%s] %s", k, m.cfg.Keybindings[k].Help))
	}
	parts = append(parts, "[esc] close", "[q] quit")
	return strings.Join(parts, "  ")
}

// opacityBar renders an eight-cell bar for an opacity in [0, 1].
func opacityBar(opacity float64) string {
	const cells = 8
	filled := int(opacity*cells + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > cells {
		filled = cells
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

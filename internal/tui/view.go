package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	header := titleStyle.Render(fmt.Sprintf(" svggeo ─ %s ", m.name))
	header = lipgloss.NewStyle().Width(lo.contentW).Render(header)

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(lo.sidebarW).Render(m.l.View())
	}

	var mapView string
	if m.showAttrs {
		// infer a reasonable width from columns
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, lo.contentW-6)
		}
		maxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	} else {
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderMap(lo.mapW, lo.mapH))
	}

	// inspect popup overlays the left edge of the body
	if m.inspectPopup != "" && !m.showAttrs {
		popupW := max(20, min(48, lo.contentW/2))
		box := boxStyle.MaxWidth(popupW).Render(m.inspectPopup)
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Left, lipgloss.Top, box)
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	footer := lipgloss.NewStyle().Width(lo.contentW).Render(m.renderFooter(lo.contentW))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

func (m Model) renderFooter(width int) string {
	st := dimStyle
	if strings.Contains(m.status, "error") {
		st = errorStyle
	}
	status := st.Render(" " + m.status + " ")

	info := ""
	if m.src != nil {
		info = fmt.Sprintf("complexity=%d", m.complexity)
		if m.converting {
			info += " (converting)"
		}
	}
	if m.hoverHasGeo {
		info += fmt.Sprintf("  lon=%.5f lat=%.5f", m.hoverLon, m.hoverLat)
	}
	right := dimStyle.Render(info + "  ")

	left := status
	if help := m.renderHelp(); help != "" {
		left = lipgloss.JoinVertical(lipgloss.Left, status, help)
	}
	spacer := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, strings.Repeat(" ", spacer), right)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"0 reset",
		"[/] complexity",
		"Tab features",
		"Enter select",
		"a attrs",
		"i inspect",
		"1/2/3 layers",
		"h help",
		"q quit",
	}
	return dimStyle.Render(" " + strings.Join(keys, "  "))
}

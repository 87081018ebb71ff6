package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const sidebarWidth = 32

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	const headerHeight, footerHeight = 1, 2
	lo := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	if m.showSidebar {
		lo.sidebarW = sidebarWidth
		lo.mapX = sidebarWidth + 1
	}
	lo.mapW = max(10, lo.contentW-lo.sidebarW-1)
	lo.mapH = lo.contentH
	return lo
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lo := m.layout()
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
	case convertedMsg:
		if msg.complexity != m.complexity {
			// superseded by a newer request
			return m, nil
		}
		m.converting = false
		if msg.err != nil {
			m.status = "convert error: " + msg.err.Error()
			return m, nil
		}
		m.setCollection(msg.fc)
		m.status = fmt.Sprintf("converted %s  features=%d  complexity=%d", m.name, len(msg.fc.Features), msg.complexity)
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "[", "]":
			if m.src == nil {
				m.status = "complexity is fixed for a loaded collection"
				return m, nil
			}
			next := m.complexity + 1
			if msg.String() == "[" {
				next = max(1, m.complexity-1)
			}
			if next == m.complexity {
				return m, nil
			}
			m.complexity = next
			m.status = fmt.Sprintf("converting at complexity %d ...", next)
			return m, m.convertCmd()
		case "1":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "2":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polygons: %v", m.showPolys)
		case "3", "v":
			m.showVertices = !m.showVertices
			m.status = fmt.Sprintf("vertices: %v", m.showVertices)
		case "l":
			all := m.showLines && m.showPolys && m.showVertices
			m.showLines, m.showPolys, m.showVertices = !all, !all, !all
			m.status = fmt.Sprintf("layers: ls=%v poly=%v vtx=%v", m.showLines, m.showPolys, m.showVertices)
		case "+", "=":
			if m.zoom < 256 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom, m.offsetX, m.offsetY = 1, 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrs()
			}
		case "i":
			lo := m.layout()
			if idx, ok := m.featureAt(lo.mapW, lo.mapH); ok {
				m.selected = idx
				m.inspectPopup = m.describeFeature(idx)
				m.status = "inspect popup"
			} else {
				m.inspectPopup = "no feature nearby"
				m.status = m.inspectPopup
			}
		case "esc":
			m.inspectPopup = ""
			m.selected = -1
		case "enter":
			switch {
			case m.showAttrs:
				m.selectFeature(m.tbl.Cursor())
			case m.showSidebar:
				if it, ok := m.l.SelectedItem().(featureItem); ok {
					m.selectFeature(it.index)
				}
			}
		case "up", "down":
			if m.showAttrs {
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
			if m.showSidebar {
				break
			}
			if msg.String() == "up" {
				m.offsetY -= 1
			} else {
				m.offsetY += 1
			}
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		lo := m.layout()
		cx, cy := msg.X-lo.mapX, msg.Y-lo.mapY
		if cx >= 0 && cx < lo.mapW && cy >= 0 && cy < lo.mapH {
			m.hovering = true
			if lon, lat, ok := m.cellToLonLat(cx, cy, lo.mapW, lo.mapH); ok {
				m.hoverHasGeo = true
				m.hoverLon = lon
				m.hoverLat = lat
			} else {
				m.hoverHasGeo = false
			}
			m.hoverMicX, m.hoverMicY, m.hovering = m.nearestVertex(cx*2, cy*4, lo.mapW, lo.mapH)
		} else {
			m.hovering = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) selectFeature(i int) {
	if m.fc == nil || i < 0 || i >= len(m.fc.Features) {
		return
	}
	m.selected = i
	m.inspectPopup = m.describeFeature(i)
	m.status = fmt.Sprintf("selected %s", featureLabel(i, m.fc.Features[i]))
}

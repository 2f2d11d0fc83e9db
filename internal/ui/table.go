package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"stackwatch/internal/dockerd"
)

// Column widths; the name column absorbs whatever is left.
const (
	colStatus = 16
	colHealth = 13
	colPorts  = 24
	colUptime = 9
	colCPU    = 7
	colMem    = 19

	minNameWidth = 12

	// Narrow terminals drop the noisier columns first.
	layoutPortsWidth = 84
	layoutStatsWidth = 110
)

// tableLine is one rendered line of the table. row indexes into m.rows for
// container lines and is -1 for group headers, blanks, and placeholders.
type tableLine struct {
	text string
	row  int
}

// renderTable renders the grouped container table.
func (m Model) renderTable() string {
	height := m.contentHeight()
	lines := m.buildTableLines()

	top := m.scroll
	if top > len(lines)-height {
		top = len(lines) - height
	}
	if top < 0 {
		top = 0
	}

	var b strings.Builder
	for i := 0; i < height; i++ {
		if i > 0 {
			b.WriteString("\n")
		}
		if top+i < len(lines) {
			b.WriteString(lines[top+i].text)
		}
	}
	return b.String()
}

// buildTableLines lays out group headers and container rows in display order.
func (m Model) buildTableLines() []tableLine {
	styles := m.theme.Styles()

	if !m.view.HasSnapshot {
		return []tableLine{{text: styles.MutedText.Render("Waiting for first poll..."), row: -1}}
	}
	if len(m.rows) == 0 {
		return []tableLine{{text: styles.MutedText.Render("No containers found"), row: -1}}
	}

	showPorts := m.width >= layoutPortsWidth
	showStats := m.width >= layoutStatsWidth
	nameWidth := m.nameWidth(showPorts, showStats)

	var lines []tableLine
	lines = append(lines, tableLine{text: m.renderColumnHeader(nameWidth, showPorts, showStats), row: -1})

	now := time.Now()
	rowIdx := 0
	for gi, g := range m.view.Snapshot.Groups {
		if gi > 0 {
			lines = append(lines, tableLine{text: "", row: -1})
		}
		header := fmt.Sprintf("▸ %s (%d)", g.Project, len(g.Containers))
		lines = append(lines, tableLine{text: styles.ProjectHeader.Render(header), row: -1})

		for range g.Containers {
			lines = append(lines, tableLine{
				text: m.renderRow(now, rowIdx, nameWidth, showPorts, showStats),
				row:  rowIdx,
			})
			rowIdx++
		}
	}
	return lines
}

func (m Model) nameWidth(showPorts, showStats bool) int {
	w := m.width - colStatus - colHealth - colUptime - 4 // group indent + gaps
	if showPorts {
		w -= colPorts
	}
	if showStats {
		w -= colCPU + colMem
	}
	if w < minNameWidth {
		w = minNameWidth
	}
	return w
}

func (m Model) renderColumnHeader(nameWidth int, showPorts, showStats bool) string {
	cells := []string{
		pad("NAME", nameWidth),
		pad("STATUS", colStatus),
		pad("HEALTH", colHealth),
	}
	if showPorts {
		cells = append(cells, pad("PORTS", colPorts))
	}
	cells = append(cells, pad("UPTIME", colUptime))
	if showStats {
		cells = append(cells, pad("CPU", colCPU), pad("MEM", colMem))
	}
	return m.theme.Styles().FaintText.Bold(true).Render("  " + strings.Join(cells, ""))
}

// renderRow renders one container line. Selection wins over the change
// highlight; both paint the whole line so the cursor is easy to track.
func (m Model) renderRow(now time.Time, rowIdx, nameWidth int, showPorts, showStats bool) string {
	styles := m.theme.Styles()
	c := m.rows[rowIdx]

	plain := m.rowText(now, rowIdx, nameWidth, showPorts, showStats)

	if rowIdx == m.selectedRow {
		return styles.Selected.Width(m.width).Render(plain)
	}
	if m.hadPrev && (m.diff.Added.Contains(c.ID) || m.diff.Changed.Contains(c.ID)) {
		return styles.Highlight.Width(m.width).Render(plain)
	}

	// Per-cell colors for ordinary rows
	cells := []string{
		styles.Text.Render(pad(truncate(c.Name, nameWidth-2), nameWidth)),
		styles.StatusStyle(string(c.Status)).Render(pad(statusGlyph(c)+" "+statusLabel(c), colStatus)),
		healthStyle(styles, c.Health).Render(pad(healthGlyph(c.Health), colHealth)),
	}
	if showPorts {
		cells = append(cells, styles.MutedText.Render(pad(formatPorts(c, colPorts-2), colPorts)))
	}
	cells = append(cells, styles.MutedText.Render(pad(formatUptime(now, c), colUptime)))
	if showStats {
		cells = append(cells,
			styles.MutedText.Render(pad(formatCPU(c), colCPU)),
			styles.MutedText.Render(pad(formatMem(c), colMem)))
	}
	return "  " + strings.Join(cells, "")
}

// rowText renders a row without per-cell colors, for full-line backgrounds.
func (m Model) rowText(now time.Time, rowIdx, nameWidth int, showPorts, showStats bool) string {
	c := m.rows[rowIdx]
	cells := []string{
		pad(truncate(c.Name, nameWidth-2), nameWidth),
		pad(statusGlyph(c)+" "+statusLabel(c), colStatus),
		pad(healthGlyph(c.Health), colHealth),
	}
	if showPorts {
		cells = append(cells, pad(formatPorts(c, colPorts-2), colPorts))
	}
	cells = append(cells, pad(formatUptime(now, c), colUptime))
	if showStats {
		cells = append(cells, pad(formatCPU(c), colCPU), pad(formatMem(c), colMem))
	}
	return "  " + strings.Join(cells, "")
}

func healthStyle(styles Styles, h dockerd.Health) lipgloss.Style {
	switch h {
	case dockerd.HealthHealthy:
		return styles.SuccessText
	case dockerd.HealthUnhealthy:
		return styles.DangerText
	case dockerd.HealthStarting:
		return styles.WarningText
	default:
		return styles.FaintText
	}
}

// pad left-aligns s in a cell of the given width, truncating when needed.
func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = truncate(s, width-1)
	if w := lenRunes(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func lenRunes(s string) int {
	return len([]rune(s))
}

// ensureVisible keeps the selected container's line inside the scroll window.
func (m *Model) ensureVisible() {
	if len(m.rows) == 0 {
		m.scroll = 0
		return
	}

	lines := m.buildTableLines()
	target := -1
	for i, l := range lines {
		if l.row == m.selectedRow {
			target = i
			break
		}
	}
	if target < 0 {
		return
	}

	height := m.contentHeight()
	if target < m.scroll {
		m.scroll = target
	}
	if target >= m.scroll+height {
		m.scroll = target - height + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

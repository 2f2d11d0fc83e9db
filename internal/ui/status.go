package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"stackwatch/internal/dockerd"
)

// statusGlyph returns the emoji shown next to a container's status.
func statusGlyph(c dockerd.Container) string {
	switch c.Status {
	case dockerd.StatusRunning:
		return "✅"
	case dockerd.StatusRestarting:
		return "🔁"
	case dockerd.StatusExited, dockerd.StatusDead:
		return "❌"
	case dockerd.StatusPaused:
		return "⏸️"
	case dockerd.StatusCreated:
		return "◌"
	default:
		return "❓"
	}
}

// statusLabel returns the status column text. Exited containers carry their
// exit code so a crash is distinguishable from a clean stop at a glance.
func statusLabel(c dockerd.Container) string {
	switch c.Status {
	case dockerd.StatusRunning:
		return "Up"
	case dockerd.StatusRestarting:
		return "Restarting"
	case dockerd.StatusExited:
		return fmt.Sprintf("Exited (%d)", c.ExitCode)
	case dockerd.StatusDead:
		return "Dead"
	case dockerd.StatusPaused:
		return "Paused"
	case dockerd.StatusCreated:
		return "Created"
	default:
		return "Unknown"
	}
}

// healthGlyph returns the health column text for a container.
func healthGlyph(h dockerd.Health) string {
	switch h {
	case dockerd.HealthHealthy:
		return "🟢 healthy"
	case dockerd.HealthUnhealthy:
		return "🔴 unhealthy"
	case dockerd.HealthStarting:
		return "🟡 starting"
	default:
		return "-"
	}
}

// formatUptime returns the uptime column text: elapsed time for running
// containers, a dash for everything else.
func formatUptime(now time.Time, c dockerd.Container) string {
	if c.Status != dockerd.StatusRunning && c.Status != dockerd.StatusRestarting {
		return "-"
	}
	if c.StartedAt.IsZero() {
		return "-"
	}
	d := now.Sub(c.StartedAt)
	if d < 0 {
		d = 0
	}
	return formatDuration(d)
}

// formatDuration renders a duration in at most two units, e.g. "2h 13m".
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	default:
		days := int(d.Hours()) / 24
		return fmt.Sprintf("%dd %dh", days, int(d.Hours())%24)
	}
}

// formatPorts joins a container's published ports for the ports column.
func formatPorts(c dockerd.Container, max int) string {
	if len(c.Ports) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(c.Ports))
	for _, p := range c.Ports {
		parts = append(parts, p.String())
	}
	return truncate(strings.Join(parts, ", "), max)
}

// formatCPU renders the CPU column. Containers without a stats sample show a
// dash rather than a misleading zero.
func formatCPU(c dockerd.Container) string {
	if !c.HasStats {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", c.CPUPercent)
}

// formatMem renders the memory column as used/limit.
func formatMem(c dockerd.Container) string {
	if !c.HasStats || c.MemUsage == 0 {
		return "-"
	}
	used := humanize.IBytes(c.MemUsage)
	if c.MemLimit == 0 {
		return used
	}
	return used + "/" + humanize.IBytes(c.MemLimit)
}

package dockerd

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// composeProjectLabel is the label the compose tooling stamps on every
// container it launches.
const composeProjectLabel = "com.docker.compose.project"

// Status is the coarse lifecycle state the daemon reports for a container.
type Status string

const (
	StatusRunning    Status = "running"
	StatusExited     Status = "exited"
	StatusRestarting Status = "restarting"
	StatusCreated    Status = "created"
	StatusPaused     Status = "paused"
	StatusDead       Status = "dead"
	StatusUnknown    Status = "unknown"
)

// ParseStatus maps a daemon state string onto the known statuses.
func ParseStatus(raw string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusRunning:
		return StatusRunning
	case StatusExited:
		return StatusExited
	case StatusRestarting:
		return StatusRestarting
	case StatusCreated:
		return StatusCreated
	case StatusPaused:
		return StatusPaused
	case StatusDead:
		return StatusDead
	default:
		return StatusUnknown
	}
}

// Health is the health-check verdict for a container. HealthNone means no
// health check is configured.
type Health string

const (
	HealthHealthy   Health = "healthy"
	HealthUnhealthy Health = "unhealthy"
	HealthStarting  Health = "starting"
	HealthNone      Health = "none"
)

// ParseHealth maps a daemon health string onto the known health states.
// An empty string means the container has no health check.
func ParseHealth(raw string) Health {
	switch Health(strings.ToLower(strings.TrimSpace(raw))) {
	case HealthHealthy:
		return HealthHealthy
	case HealthUnhealthy:
		return HealthUnhealthy
	case HealthStarting:
		return HealthStarting
	default:
		return HealthNone
	}
}

// PortMapping describes one exposed container port and, when published,
// the host port bound to it.
type PortMapping struct {
	HostPort      uint16 // zero when the port is exposed but not published
	ContainerPort uint16
	Protocol      string
}

// Published reports whether the port is bound on the host.
func (p PortMapping) Published() bool {
	return p.HostPort != 0
}

// String renders the mapping as "8080→80/tcp", or "80/tcp" when the port
// is not published.
func (p PortMapping) String() string {
	if p.Published() {
		return fmt.Sprintf("%d→%d/%s", p.HostPort, p.ContainerPort, p.Protocol)
	}
	return fmt.Sprintf("%d/%s", p.ContainerPort, p.Protocol)
}

// SortPorts orders mappings for stable display: by container port, then
// protocol, then host port.
func SortPorts(ports []PortMapping) {
	sort.Slice(ports, func(i, j int) bool {
		a, b := ports[i], ports[j]
		if a.ContainerPort != b.ContainerPort {
			return a.ContainerPort < b.ContainerPort
		}
		if a.Protocol != b.Protocol {
			return a.Protocol < b.Protocol
		}
		return a.HostPort < b.HostPort
	})
}

// Container is one observed container with the fields the dashboard
// displays. It is a plain value; the poller builds a fresh set each cycle.
type Container struct {
	ID      string
	Name    string
	Image   string
	Project string // empty when the compose project label is absent
	Status  Status
	Health  Health
	Ports   []PortMapping
	TTY     bool

	// StartedAt is zero unless the daemon reported a start time.
	StartedAt time.Time
	// ExitCode is meaningful only for exited/dead containers.
	ExitCode int

	// One-shot stats, collected for running containers only.
	CPUPercent float64
	MemUsage   uint64
	MemLimit   uint64
	HasStats   bool
}

// ProjectFromLabels extracts the compose project name from container
// labels, or "" when the container was not launched by compose.
func ProjectFromLabels(labels map[string]string) string {
	return strings.TrimSpace(labels[composeProjectLabel])
}

// LogLine is one decoded line of container log output. When is zero if the
// daemon did not supply a timestamp.
type LogLine struct {
	When time.Time
	Text string
}

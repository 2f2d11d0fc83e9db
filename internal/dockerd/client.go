package dockerd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// Daemon is the capability stackwatch needs from the container runtime.
// *Client is the production implementation; tests substitute fakes.
type Daemon interface {
	Ping(ctx context.Context) error
	ListContainers(ctx context.Context) ([]Container, error)
	StreamLogs(ctx context.Context, id string, tail int) (*LogStream, error)
	RestartContainer(ctx context.Context, id string) error
	StopContainer(ctx context.Context, id string) error
}

// Ensure Client implements Daemon at compile time.
var _ Daemon = (*Client)(nil)

// Client wraps the engine API client.
type Client struct {
	api client.APIClient
}

// New builds a Client from the environment (DOCKER_HOST et al). A non-empty
// host overrides the environment.
func New(host string) (*Client, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if strings.TrimSpace(host) != "" {
		opts = append(opts, client.WithHost(host))
	}
	api, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("init docker client: %w", err)
	}
	return &Client{api: api}, nil
}

// NewFromAPI wraps an existing engine API client. Used by tests.
func NewFromAPI(api client.APIClient) *Client {
	return &Client{api: api}
}

// Ping verifies the daemon is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.Ping(ctx); err != nil {
		return fmt.Errorf("ping daemon: %w", err)
	}
	return nil
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	return c.api.Close()
}

// ListContainers returns one record per container known to the daemon,
// including stopped ones. Each record is enriched with inspect details and,
// for running containers, one-shot stats. Containers that vanish mid-poll
// are skipped.
func (c *Client) ListContainers(ctx context.Context) ([]Container, error) {
	summaries, err := c.api.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	records := make([]Container, 0, len(summaries))
	for _, sum := range summaries {
		rec := recordFromSummary(sum)

		info, err := c.api.ContainerInspect(ctx, sum.ID)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("inspect %s: %w", rec.Name, err)
		}
		applyInspect(&rec, info)

		if rec.Status == StatusRunning {
			c.collectStats(ctx, &rec)
		}
		records = append(records, rec)
	}
	return records, nil
}

// RestartContainer restarts a container with the daemon's default timeout.
// A vanished container is not an error.
func (c *Client) RestartContainer(ctx context.Context, id string) error {
	if err := c.api.ContainerRestart(ctx, id, container.StopOptions{}); err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("restart container: %w", err)
	}
	return nil
}

// StopContainer stops a container with the daemon's default timeout.
// A vanished container is not an error.
func (c *Client) StopContainer(ctx context.Context, id string) error {
	if err := c.api.ContainerStop(ctx, id, container.StopOptions{}); err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("stop container: %w", err)
	}
	return nil
}

func recordFromSummary(sum container.Summary) Container {
	name := sum.ID
	if len(sum.Names) > 0 {
		name = strings.TrimPrefix(sum.Names[0], "/")
	}
	return Container{
		ID:      sum.ID,
		Name:    name,
		Image:   sum.Image,
		Project: ProjectFromLabels(sum.Labels),
		Status:  ParseStatus(string(sum.State)),
		Ports:   portMappings(sum.Ports),
	}
}

// portMappings converts and dedups the daemon's port list. The daemon
// reports one entry per host IP binding; the dashboard only cares about
// the port triple.
func portMappings(ports []container.Port) []PortMapping {
	seen := make(map[PortMapping]struct{}, len(ports))
	out := make([]PortMapping, 0, len(ports))
	for _, p := range ports {
		m := PortMapping{
			HostPort:      p.PublicPort,
			ContainerPort: p.PrivatePort,
			Protocol:      string(p.Type),
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	SortPorts(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func applyInspect(rec *Container, info container.InspectResponse) {
	if info.Config != nil {
		rec.TTY = info.Config.Tty
	}
	if info.State == nil {
		return
	}
	rec.Status = ParseStatus(info.State.Status)
	rec.ExitCode = info.State.ExitCode
	if info.State.Health != nil {
		rec.Health = ParseHealth(info.State.Health.Status)
	} else {
		rec.Health = HealthNone
	}
	if started, err := time.Parse(time.RFC3339Nano, info.State.StartedAt); err == nil && !started.IsZero() {
		rec.StartedAt = started
	}
}

// collectStats fills in one-shot CPU/memory usage. Best effort: a container
// stopping mid-poll just leaves the record without stats.
func (c *Client) collectStats(ctx context.Context, rec *Container) {
	resp, err := c.api.ContainerStatsOneShot(ctx, rec.ID)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	var stats container.StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return
	}
	rec.CPUPercent = cpuPercent(stats)
	rec.MemUsage = stats.MemoryStats.Usage
	rec.MemLimit = stats.MemoryStats.Limit
	rec.HasStats = true
}

// cpuPercent derives a CPU percentage from the daemon's cumulative counters.
func cpuPercent(stats container.StatsResponse) float64 {
	sysDelta := float64(stats.CPUStats.SystemUsage) - float64(stats.PreCPUStats.SystemUsage)
	cpuDelta := float64(stats.CPUStats.CPUUsage.TotalUsage) - float64(stats.PreCPUStats.CPUUsage.TotalUsage)
	if sysDelta <= 0 || cpuDelta < 0 {
		return 0
	}
	cpus := float64(stats.CPUStats.OnlineCPUs)
	if cpus == 0 {
		cpus = float64(len(stats.CPUStats.CPUUsage.PercpuUsage))
		if cpus == 0 {
			cpus = 1
		}
	}
	return cpuDelta / sysDelta * cpus * 100
}

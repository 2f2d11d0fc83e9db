package dockerd

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"running", StatusRunning},
		{"Running", StatusRunning},
		{" exited ", StatusExited},
		{"restarting", StatusRestarting},
		{"created", StatusCreated},
		{"paused", StatusPaused},
		{"dead", StatusDead},
		{"", StatusUnknown},
		{"removing", StatusUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseStatus(tc.in); got != tc.want {
				t.Fatalf("ParseStatus(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseHealth(t *testing.T) {
	cases := []struct {
		in   string
		want Health
	}{
		{"healthy", HealthHealthy},
		{"unhealthy", HealthUnhealthy},
		{"starting", HealthStarting},
		{"", HealthNone},
		{"none", HealthNone},
	}
	for _, tc := range cases {
		if got := ParseHealth(tc.in); got != tc.want {
			t.Fatalf("ParseHealth(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPortMappingString(t *testing.T) {
	published := PortMapping{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"}
	if got := published.String(); got != "8080→80/tcp" {
		t.Fatalf("String() = %q, want 8080→80/tcp", got)
	}
	exposed := PortMapping{ContainerPort: 5432, Protocol: "tcp"}
	if exposed.Published() {
		t.Fatal("Published() = true for unbound port")
	}
	if got := exposed.String(); got != "5432/tcp" {
		t.Fatalf("String() = %q, want 5432/tcp", got)
	}
}

func TestSortPorts(t *testing.T) {
	ports := []PortMapping{
		{HostPort: 9000, ContainerPort: 443, Protocol: "tcp"},
		{ContainerPort: 80, Protocol: "udp"},
		{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"},
	}
	SortPorts(ports)
	want := []PortMapping{
		{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"},
		{ContainerPort: 80, Protocol: "udp"},
		{HostPort: 9000, ContainerPort: 443, Protocol: "tcp"},
	}
	for i := range want {
		if ports[i] != want[i] {
			t.Fatalf("SortPorts[%d] = %v, want %v", i, ports[i], want[i])
		}
	}
}

func TestProjectFromLabels(t *testing.T) {
	labels := map[string]string{"com.docker.compose.project": "web"}
	if got := ProjectFromLabels(labels); got != "web" {
		t.Fatalf("ProjectFromLabels = %q, want web", got)
	}
	if got := ProjectFromLabels(map[string]string{"other": "x"}); got != "" {
		t.Fatalf("ProjectFromLabels without label = %q, want empty", got)
	}
	if got := ProjectFromLabels(nil); got != "" {
		t.Fatalf("ProjectFromLabels(nil) = %q, want empty", got)
	}
}

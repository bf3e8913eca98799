package monitor

import (
	"strings"
	"testing"
)

func TestResolveCanonical(t *testing.T) {
	for _, name := range []string{"cpu", "gpu", "memory", "net", "storage"} {
		p, err := Resolve(name)
		if err != nil {
			t.Errorf("Resolve(%q): %v", name, err)
			continue
		}
		if p.Name != name {
			t.Errorf("Resolve(%q) = %q", name, p.Name)
		}
	}
}

func TestResolveAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"mem", "memory"},
		{"disk", "storage"},
		{"io", "storage"},
	}
	for _, tc := range tests {
		t.Run(tc.alias, func(t *testing.T) {
			p, err := Resolve(tc.alias)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tc.alias, err)
			}
			if p.Name != tc.want {
				t.Errorf("Resolve(%q) = %q, want %q", tc.alias, p.Name, tc.want)
			}
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("thermals")
	if err == nil {
		t.Fatal("Resolve accepted unknown monitor")
	}
	if !strings.Contains(err.Error(), "storage") {
		t.Errorf("error does not list available monitors: %v", err)
	}
}

func TestCommand(t *testing.T) {
	p, err := Resolve("cpu")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		program string
		named   bool
		extra   []string
		want    string
	}{
		{"default program", DefaultProgram, true, nil, "muxmon-graph cpu"},
		{"passthrough args", DefaultProgram, true, []string{"--per-core"}, "muxmon-graph cpu --per-core"},
		{"quoted passthrough", DefaultProgram, true, []string{"--title", "my cpu"}, "muxmon-graph cpu --title 'my cpu'"},
		{"override command", "htop", false, nil, "htop"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Command(tc.program, tc.named, tc.extra)
			if got != tc.want {
				t.Errorf("Command() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNamesSortedAndComplete(t *testing.T) {
	names := Names()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{"cpu", "gpu", "memory", "mem", "net", "storage", "disk", "io"} {
		if !seen[want] {
			t.Errorf("Names() missing %q", want)
		}
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Names() not sorted at %d: %q > %q", i, names[i-1], names[i])
		}
	}
}

func TestFillerCommand(t *testing.T) {
	if FillerCommand() == "" {
		t.Fatal("empty filler command")
	}
}

// Package monitor describes the content providers that can occupy panes.
//
// Providers are external programs; muxmon only needs to know their names,
// how to invoke them, and whether they can run on this host. The table is
// fixed at compile time: there is no dynamic registration.
package monitor

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// DefaultProgram is the companion renderer binary invoked with a provider
// name as its first argument, e.g. "muxmon-graph cpu".
const DefaultProgram = "muxmon-graph"

// Provider is one launchable content source.
type Provider struct {
	Name    string
	Title   string
	Aliases []string

	probe func() bool
}

var table = []Provider{
	{
		Name:  "cpu",
		Title: "CPU",
		probe: procFile("/proc/stat"),
	},
	{
		Name:  "gpu",
		Title: "GPU",
		probe: func() bool {
			_, err := exec.LookPath("nvidia-smi")
			return err == nil
		},
	},
	{
		Name:    "memory",
		Title:   "Mem",
		Aliases: []string{"mem"},
		probe:   procFile("/proc/meminfo"),
	},
	{
		Name:  "net",
		Title: "Net",
		probe: procFile("/proc/net/dev"),
	},
	{
		Name:    "storage",
		Title:   "Disk I/O",
		Aliases: []string{"disk", "io"},
		probe:   procFile("/proc/diskstats"),
	},
}

func procFile(path string) func() bool {
	return func() bool {
		_, err := os.Stat(path)
		return err == nil
	}
}

// All returns every known provider in listing order.
func All() []Provider {
	out := make([]Provider, len(table))
	copy(out, table)
	return out
}

// Available returns the providers that can run on this host, in listing
// order.
func Available() []Provider {
	var out []Provider
	for _, p := range table {
		if p.CanRun() {
			out = append(out, p)
		}
	}
	return out
}

// Resolve looks a provider up by canonical name or alias.
func Resolve(name string) (Provider, error) {
	for _, p := range table {
		if p.Name == name {
			return p, nil
		}
		for _, a := range p.Aliases {
			if a == name {
				return p, nil
			}
		}
	}
	return Provider{}, fmt.Errorf("unknown monitor %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names returns all accepted monitor names, canonical names and aliases
// alike, sorted.
func Names() []string {
	var names []string
	for _, p := range table {
		names = append(names, p.Name)
		names = append(names, p.Aliases...)
	}
	sort.Strings(names)
	return names
}

// CanRun reports whether the provider's data source exists on this host.
func (p Provider) CanRun() bool {
	if p.probe == nil {
		return true
	}
	return p.probe()
}

// Command builds the shell command that runs this provider in a pane.
// program is the renderer invocation (possibly overridden per provider via
// config, in which case it already names the monitor); extra arguments are
// quoted and passed through untouched.
func (p Provider) Command(program string, named bool, extra []string) string {
	parts := []string{program}
	if named {
		parts = append(parts, p.Name)
	}
	for _, arg := range extra {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

// FillerCommand is the trivial process that holds an unused padded slot
// open. It must survive indefinitely and be safe to kill at any time.
func FillerCommand() string {
	return "tail -f /dev/null"
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t'\"\\$`!*?[]{}()<>;&|~#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

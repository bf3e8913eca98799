// Package reflow recomputes and reapplies the session layout when the
// terminal resizes, without rebuilding panes.
package reflow

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Gate debounces reflow applications across independently spawned hook
// invocations by persisting the last-applied timestamp per session. The
// read-modify-write is unlocked: a narrow race can let two invocations both
// pass, which is acceptable because applying a named layout twice is
// idempotent and cheap. Any I/O or parse failure fails open so a transient
// storage fault never wedges resizing.
type Gate struct {
	dir string
	now func() time.Time
}

// NewGate creates a gate storing stamps under dir, or the system temp
// directory when dir is empty.
func NewGate(dir string) *Gate {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Gate{dir: dir, now: time.Now}
}

// Allow reports whether a reflow may apply now, and stamps the gate when it
// does. Events inside the minimum interval are dropped, not queued.
func (g *Gate) Allow(session string, minInterval time.Duration) bool {
	now := float64(g.now().UnixNano()) / 1e9

	if minInterval > 0 {
		if data, err := os.ReadFile(g.stampPath(session)); err == nil {
			if last, perr := strconv.ParseFloat(strings.TrimSpace(string(data)), 64); perr == nil {
				if now-last < minInterval.Seconds() {
					return false
				}
			}
		}
	}

	// Best effort: a failed write means the next event also applies.
	_ = os.WriteFile(g.stampPath(session), []byte(strconv.FormatFloat(now, 'f', 6, 64)), 0o644)
	return true
}

// Clear removes the session's stamp so the next reflow always applies.
// Called after a fresh build.
func (g *Gate) Clear(session string) {
	_ = os.Remove(g.stampPath(session))
}

func (g *Gate) stampPath(session string) string {
	return filepath.Join(g.dir, "muxmon-reflow-"+stampKey(session)+".stamp")
}

// stampKey maps a session name onto a safe file name component.
func stampKey(session string) string {
	var b strings.Builder
	for _, r := range session {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

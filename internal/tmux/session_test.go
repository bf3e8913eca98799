package tmux

import (
	"context"
	"strings"
	"testing"
)

// scriptRunner records invocations and returns canned output keyed on the
// tmux subcommand.
type scriptRunner struct {
	calls   [][]string
	outputs map[string]string
}

func (s *scriptRunner) run(_ context.Context, args ...string) (string, error) {
	s.calls = append(s.calls, args)
	if out, ok := s.outputs[args[0]]; ok {
		return out, nil
	}
	return "", nil
}

func newScripted(outputs map[string]string) (*Client, *scriptRunner) {
	r := &scriptRunner{outputs: outputs}
	return NewClient(WithRunner(r.run)), r
}

func TestNewSessionArgs(t *testing.T) {
	c, r := newScripted(nil)
	if err := c.NewSession(context.Background(), "mon", 160, 40, "/tmp", "tail -f /dev/null"); err != nil {
		t.Fatal(err)
	}
	got := strings.Join(r.calls[0], " ")
	want := "new-session -d -s mon -x 160 -y 40 -c /tmp tail -f /dev/null"
	if got != want {
		t.Errorf("NewSession args = %q, want %q", got, want)
	}
}

func TestSplitPaneArgs(t *testing.T) {
	tests := []struct {
		name     string
		vertical bool
		percent  int
		want     string
	}{
		{"vertical split", true, 67, "split-window -t %1 -v -l 67% -P -F #{pane_id}"},
		{"horizontal split", false, 50, "split-window -t %1 -h -l 50% -P -F #{pane_id}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, r := newScripted(map[string]string{"split-window": "%9"})
			id, err := c.SplitPane(context.Background(), "%1", tc.vertical, tc.percent, "", "")
			if err != nil {
				t.Fatal(err)
			}
			if id != "%9" {
				t.Errorf("pane id = %q, want %%9", id)
			}
			got := strings.Join(r.calls[0], " ")
			if got != tc.want {
				t.Errorf("SplitPane args = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestListPanesParsing(t *testing.T) {
	out := strings.Join([]string{
		"%0|===|0|===|0|===|80|===|20|===|1",
		"%1|===|0|===|81|===|79|===|20|===|0",
		"%2|===|21|===|0|===|160|===|19|===|0",
	}, "\n")
	c, _ := newScripted(map[string]string{"list-panes": out})

	panes, err := c.ListPanes(context.Background(), "mon")
	if err != nil {
		t.Fatal(err)
	}
	if len(panes) != 3 {
		t.Fatalf("got %d panes, want 3", len(panes))
	}
	want := Pane{ID: "%1", Top: 0, Left: 81, Width: 79, Height: 20}
	if panes[1] != want {
		t.Errorf("pane[1] = %+v, want %+v", panes[1], want)
	}
	if !panes[0].Active {
		t.Error("pane[0] should be active")
	}
}

func TestWindowSize(t *testing.T) {
	c, _ := newScripted(map[string]string{"display-message": "204 51"})
	cols, rows, err := c.WindowSize("mon")
	if err != nil {
		t.Fatal(err)
	}
	if cols != 204 || rows != 51 {
		t.Errorf("WindowSize = %dx%d, want 204x51", cols, rows)
	}
}

func TestSetHookQuoting(t *testing.T) {
	c, r := newScripted(nil)
	if err := c.SetHook("mon", HookClientResized, "/usr/bin/muxmon reflow --session mon"); err != nil {
		t.Fatal(err)
	}
	got := r.calls[0]
	if got[len(got)-1] != "run-shell '/usr/bin/muxmon reflow --session mon'" {
		t.Errorf("hook command = %q", got[len(got)-1])
	}
	if got[3] != HookClientResized {
		t.Errorf("hook event = %q", got[3])
	}
}

func TestRespawnPaneArgs(t *testing.T) {
	c, r := newScripted(nil)
	if err := c.RespawnPane(context.Background(), "%3", "/home", "muxmon-graph cpu"); err != nil {
		t.Fatal(err)
	}
	got := strings.Join(r.calls[0], " ")
	want := "respawn-pane -k -t %3 -c /home muxmon-graph cpu"
	if got != want {
		t.Errorf("RespawnPane args = %q, want %q", got, want)
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "''"},
		{"plain", "'plain'"},
		{"has space", "'has space'"},
		{"it's", `'it'\''s'`},
	}
	for _, tc := range tests {
		if got := ShellQuote(tc.input); got != tc.want {
			t.Errorf("ShellQuote(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestValidateSessionName(t *testing.T) {
	if err := ValidateSessionName("muxmon"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	for _, bad := range []string{"", "a:b", "a.b", "a/b", `a\b`} {
		if err := ValidateSessionName(bad); err == nil {
			t.Errorf("ValidateSessionName(%q) accepted", bad)
		}
	}
}

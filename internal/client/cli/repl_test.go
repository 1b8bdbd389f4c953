package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kudilabs/kudi-client/internal/client/api"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn   bool
	calls      []string
	summaryErr error
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) isLoggedIn(context.Context) bool { return s.loggedIn }
func (s *stubExec) Connect(context.Context) error   { return s.record("connect") }
func (s *stubExec) Summary(context.Context) error {
	_ = s.record("summary")
	return s.summaryErr
}
func (s *stubExec) Claim(_ context.Context, a []string) error     { return s.record("claim " + strings.Join(a, " ")) }
func (s *stubExec) Spin(context.Context) error                    { return s.record("spin") }
func (s *stubExec) Refer(_ context.Context, a []string) error     { return s.record("refer") }
func (s *stubExec) Invite(context.Context) error                  { return s.record("invite") }
func (s *stubExec) Buy(_ context.Context, a []string) error       { return s.record("buy") }
func (s *stubExec) Nickname(context.Context) error                { return s.record("nickname") }
func (s *stubExec) Cashout(_ context.Context, a []string) error   { return s.record("cashout") }
func (s *stubExec) Leaderboard(_ context.Context, a []string) error {
	return s.record("leaderboard")
}
func (s *stubExec) Report(context.Context) error               { return s.record("report") }
func (s *stubExec) Store(_ context.Context, a []string) error  { return s.record("store") }
func (s *stubExec) Follow(_ context.Context, a []string) error { return s.record("follow") }
func (s *stubExec) Logout(context.Context) error               { return s.record("logout") }
func (s *stubExec) Reset(context.Context) error                { return s.record("reset") }

func runScript(t *testing.T, exec *stubExec, script string) []string {
	t.Helper()

	var outputs []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		outputs = append(outputs, strings.Join(parts, " "))
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "test" }, scanner)
	return outputs
}

func TestREPL_DispatchesCommands(t *testing.T) {
	exec := &stubExec{loggedIn: true}
	runScript(t, exec, "summary\nclaim tap\nspin\nreport\nreset\nlogout\nexit\n")

	assert.Equal(t, []string{"summary", "claim tap", "spin", "report", "reset", "logout"}, exec.calls)
}

func TestREPL_InvalidTokenPromptsReconnect(t *testing.T) {
	exec := &stubExec{loggedIn: true, summaryErr: &api.Error{Status: 401, Code: "invalid_token"}}
	out := strings.Join(runScript(t, exec, "summary\nexit\n"), "\n")

	assert.Contains(t, out, "Session expired. Reconnect with 'connect'.")
	assert.NotContains(t, out, "Error:")
}

func TestREPL_EmptyAndUnknownLines(t *testing.T) {
	exec := &stubExec{}
	outputs := runScript(t, exec, "\n   \nbogus\nexit\n")

	assert.Empty(t, exec.calls)
	joined := strings.Join(outputs, "\n")
	assert.Contains(t, joined, "Unknown command: bogus")
	assert.Contains(t, joined, "Bye!")
}

func TestREPL_HelpDependsOnLogin(t *testing.T) {
	out := strings.Join(runScript(t, &stubExec{loggedIn: false}, "help\nexit\n"), "\n")
	assert.Contains(t, out, "connect")
	assert.NotContains(t, out, "cashout")

	out = strings.Join(runScript(t, &stubExec{loggedIn: true}, "help\nexit\n"), "\n")
	assert.Contains(t, out, "cashout")
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "summary\n")
	assert.Equal(t, []string{"summary"}, exec.calls)
}

func TestShortWallet(t *testing.T) {
	assert.Equal(t, "Wk1a…wxyz", shortWallet("Wk1abcdefghijklmnopqrstuvwxyz"))
	assert.Equal(t, "short", shortWallet("short"))
}

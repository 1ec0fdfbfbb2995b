package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records dispatched commands and returns a scripted error.
type stubExec struct {
	calls    []string
	loggedIn bool
	err      error
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return s.err
}

func (s *stubExec) isLoggedIn() bool                        { return s.loggedIn }
func (s *stubExec) Register(ctx context.Context) error      { return s.record("register") }
func (s *stubExec) Login(ctx context.Context) error         { return s.record("login") }
func (s *stubExec) Logout(ctx context.Context) error        { return s.record("logout") }
func (s *stubExec) AddWeight(ctx context.Context) error     { return s.record("addweight") }
func (s *stubExec) ListWeights(ctx context.Context) error   { return s.record("weights") }
func (s *stubExec) DeleteWeight(ctx context.Context) error  { return s.record("delweight") }
func (s *stubExec) AddInjection(ctx context.Context) error  { return s.record("addshot") }
func (s *stubExec) ListInjections(ctx context.Context) error {
	return s.record("shots")
}
func (s *stubExec) DeleteInjection(ctx context.Context) error { return s.record("delshot") }
func (s *stubExec) AddSchedule(ctx context.Context) error     { return s.record("addschedule") }
func (s *stubExec) StopSchedule(ctx context.Context) error    { return s.record("stopschedule") }
func (s *stubExec) ListSchedules(ctx context.Context) error   { return s.record("schedules") }
func (s *stubExec) AddGoal(ctx context.Context) error         { return s.record("addgoal") }
func (s *stubExec) MarkGoalDone(ctx context.Context) error    { return s.record("goaldone") }
func (s *stubExec) ListGoals(ctx context.Context) error       { return s.record("goals") }
func (s *stubExec) SetSetting(ctx context.Context) error      { return s.record("set") }
func (s *stubExec) ListSettings(ctx context.Context) error    { return s.record("settings") }
func (s *stubExec) Sync(ctx context.Context) error            { return s.record("sync") }
func (s *stubExec) Ping(ctx context.Context) error            { return s.record("ping") }

func runScript(t *testing.T, e *stubExec, script string) []string {
	t.Helper()

	var output []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		output = append(output, fmt.Sprintln(a...))
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), e, func() string { return "test" }, scanner)
	return output
}

func TestREPL_DispatchesCommands(t *testing.T) {
	e := &stubExec{loggedIn: true}

	runScript(t, e, "addweight\nweights\nsync\nexit\n")

	assert.Equal(t, []string{"addweight", "weights", "sync"}, e.calls)
}

func TestREPL_UnknownCommand(t *testing.T) {
	e := &stubExec{}

	output := runScript(t, e, "frobnicate\nexit\n")

	assert.Empty(t, e.calls)
	joined := strings.Join(output, "")
	assert.Contains(t, joined, "Unknown command: frobnicate")
}

func TestREPL_CommandErrorIsPrintedAndLoopContinues(t *testing.T) {
	e := &stubExec{err: errors.New("boom")}

	output := runScript(t, e, "sync\nping\nexit\n")

	assert.Equal(t, []string{"sync", "ping"}, e.calls)
	joined := strings.Join(output, "")
	assert.Contains(t, joined, "boom")
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	e := &stubExec{}

	runScript(t, e, "weights\n")

	assert.Equal(t, []string{"weights"}, e.calls)
}

func TestREPL_EmptyLineIgnored(t *testing.T) {
	e := &stubExec{}

	runScript(t, e, "\n\nexit\n")

	assert.Empty(t, e.calls)
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	AddWeight(ctx context.Context) error
	ListWeights(ctx context.Context) error
	DeleteWeight(ctx context.Context) error
	AddInjection(ctx context.Context) error
	ListInjections(ctx context.Context) error
	DeleteInjection(ctx context.Context) error
	AddSchedule(ctx context.Context) error
	StopSchedule(ctx context.Context) error
	ListSchedules(ctx context.Context) error
	AddGoal(ctx context.Context) error
	MarkGoalDone(ctx context.Context) error
	ListGoals(ctx context.Context) error
	SetSetting(ctx context.Context) error
	ListSettings(ctx context.Context) error
	Sync(ctx context.Context) error
	Ping(ctx context.Context) error
}

// runREPL reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the user
// types "exit" or "quit".
//
// Errors returned by command handlers are printed and swallowed so the loop
// itself never dies on a failed command.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dt> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: addweight, weights, delweight, addshot, shots, delshot,")
				printlnFn("  addschedule, schedules, stopschedule, addgoal, goals, goaldone,")
				printlnFn("  set, settings, sync, ping, logout, exit")
			} else {
				printlnFn("Available commands: register, login, ping, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "addweight":
			err = a.AddWeight(ctx)

		case "weights":
			err = a.ListWeights(ctx)

		case "delweight":
			err = a.DeleteWeight(ctx)

		case "addshot":
			err = a.AddInjection(ctx)

		case "shots":
			err = a.ListInjections(ctx)

		case "delshot":
			err = a.DeleteInjection(ctx)

		case "addschedule":
			err = a.AddSchedule(ctx)

		case "schedules":
			err = a.ListSchedules(ctx)

		case "stopschedule":
			err = a.StopSchedule(ctx)

		case "addgoal":
			err = a.AddGoal(ctx)

		case "goals":
			err = a.ListGoals(ctx)

		case "goaldone":
			err = a.MarkGoalDone(ctx)

		case "set":
			err = a.SetSetting(ctx)

		case "settings":
			err = a.ListSettings(ctx)

		case "sync":
			err = a.Sync(ctx)

		case "ping":
			err = a.Ping(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

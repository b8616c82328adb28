package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/coursekeeper/internal/client/state"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	view() state.View
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Courses(ctx context.Context) error
	Open(ctx context.Context, arg string) error
	Back(ctx context.Context) error
	Toggle(ctx context.Context, arg string) error
	Status(ctx context.Context) error
	Dump(ctx context.Context) error
	Reset(ctx context.Context) error
}

var helpText = map[state.View]string{
	state.ViewAuth:         "Available commands: signup, login, status, dump, reset, exit",
	state.ViewDashboard:    "Available commands: (l)ist, view <id>, toggle <id>, status, logout, dump, reset, exit",
	state.ViewCourseDetail: "Available commands: toggle, back, status, logout, dump, reset, exit",
}

// runREPL starts a simple read-eval-print loop for the coursekeeper CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt comes from promptFn. Commands:
//
//	help             show commands available in the current view
//	signup | login   prompt for username and password
//	logout           end the session
//	l | list         redraw the current view
//	courses          same as list
//	view <id>        open a course
//	back             return to the dashboard
//	toggle [id]      flip completion; defaults to the open course
//	status           one-line session summary
//	dump             print the raw store
//	reset            erase the store (asks for confirmation)
//	exit | quit      leave the program
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(promptFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText[a.view()])

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "l", "list", "courses":
			cmdErr = a.Courses(ctx)

		case "view", "open":
			cmdErr = a.Open(ctx, arg)

		case "back":
			cmdErr = a.Back(ctx)

		case "toggle":
			cmdErr = a.Toggle(ctx, arg)

		case "status":
			cmdErr = a.Status(ctx)

		case "dump":
			cmdErr = a.Dump(ctx)

		case "reset":
			cmdErr = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(userMessage(cmdErr))
		}
	}
}

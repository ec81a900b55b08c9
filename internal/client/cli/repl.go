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
	Admin(ctx context.Context) error
	Passwd(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Activity(ctx context.Context) error
	LogActivity(ctx context.Context, args []string) error
	Chat(ctx context.Context) error
	Say(ctx context.Context, args []string) error
	Reply(ctx context.Context, args []string) error
	Attach(ctx context.Context, args []string) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF or on "exit"/"quit". Command errors are printed and the
// loop continues.
//
// Commands available to everyone:
//
//	help, register, login, admin, ls, upload, download, activity, log,
//	chat, say, reply, attach, exit
//
// Logged in users additionally get passwd and logout.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("fs %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: ls, upload, download, activity, log, chat, say, reply, attach, passwd, logout, exit")
			} else {
				printlnFn("Available commands: register, login, admin, ls, upload, download, activity, log, chat, say, reply, attach, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "admin":
			cmdErr = a.Admin(ctx)
		case "passwd":
			cmdErr = a.Passwd(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)

		case "l", "ls", "list":
			cmdErr = a.List(ctx)
		case "upload":
			cmdErr = a.Upload(ctx, args)
		case "download", "get":
			cmdErr = a.Download(ctx, args)

		case "activity":
			cmdErr = a.Activity(ctx)
		case "log":
			cmdErr = a.LogActivity(ctx, args)

		case "chat":
			cmdErr = a.Chat(ctx)
		case "say":
			cmdErr = a.Say(ctx, args)
		case "reply":
			cmdErr = a.Reply(ctx, args)
		case "attach":
			cmdErr = a.Attach(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}

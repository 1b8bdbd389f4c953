package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kudilabs/kudi-client/internal/client/api"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can provide
// a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Connect(ctx context.Context) error
	Summary(ctx context.Context) error
	Claim(ctx context.Context, args []string) error
	Spin(ctx context.Context) error
	Refer(ctx context.Context, args []string) error
	Invite(ctx context.Context) error
	Buy(ctx context.Context, args []string) error
	Nickname(ctx context.Context) error
	Cashout(ctx context.Context, args []string) error
	Leaderboard(ctx context.Context, args []string) error
	Report(ctx context.Context) error
	Store(ctx context.Context, args []string) error
	Follow(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Reset(ctx context.Context) error
}

const (
	helpLoggedIn  = "Available commands: summary, claim <tap|checkin|kudi-push|mini-challenge>, spin, refer <code>, invite, buy <starter|pro|elite>, nickname, cashout <amount>, leaderboard [alltime], report, store [buy <id>], follow [x|telegram|instagram], logout, reset, exit"
	helpLoggedOut = "Available commands: connect, refer <code>, leaderboard [alltime], reset, exit"
)

// runREPL starts the read-eval-print loop for the KUDI CLI.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Any errors returned by command handlers are printed and swallowed; the
// loop itself never dies on a failed command.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("kudi %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "connect", "login":
			err = a.Connect(ctx)

		case "summary", "s":
			err = a.Summary(ctx)

		case "claim":
			err = a.Claim(ctx, args)

		case "spin":
			err = a.Spin(ctx)

		case "refer":
			err = a.Refer(ctx, args)

		case "invite":
			err = a.Invite(ctx)

		case "buy":
			err = a.Buy(ctx, args)

		case "nickname":
			err = a.Nickname(ctx)

		case "cashout":
			err = a.Cashout(ctx, args)

		case "leaderboard", "lb":
			err = a.Leaderboard(ctx, args)

		case "report":
			err = a.Report(ctx)

		case "store":
			err = a.Store(ctx, args)

		case "follow":
			err = a.Follow(ctx, args)

		case "logout":
			err = a.Logout(ctx)

		case "reset":
			err = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			if api.IsInvalidToken(err) {
				printlnFn("Session expired. Reconnect with 'connect'.")
			} else {
				printlnFn("Error:", err.Error())
			}
		}
	}
}

// Run starts the interactive session on stdin.
func (a *App) Run(ctx context.Context) {
	fmt.Println("KUDI client (type 'help' for commands)")

	if w := a.flowResume(ctx); w != "" {
		fmt.Printf("Restored session for %s\n", shortWallet(w))
	}

	statusFn := func() string {
		if w := a.sessions.Wallet(ctx); w != "" && a.isLoggedIn(ctx) {
			return shortWallet(w)
		}
		return "disconnected"
	}
	runREPL(ctx, a, statusFn, bufio.NewScanner(os.Stdin))
}

// flowResume restores credentials without requiring the keystore to be
// unlocked; wallet-bound commands unlock it on demand.
func (a *App) flowResume(ctx context.Context) string {
	if a.sessions.Bearer(ctx) == "" {
		return ""
	}
	return a.sessions.Wallet(ctx)
}

func shortWallet(w string) string {
	if len(w) <= 8 {
		return w
	}
	return w[:4] + "…" + w[len(w)-4:]
}

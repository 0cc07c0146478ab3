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
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	DevBypass(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Home(ctx context.Context) error
	Trips(ctx context.Context, filter string) error
	MyTrips(ctx context.Context) error
	Stats(ctx context.Context) error
	Account(ctx context.Context) error
	PlanTrip(ctx context.Context) error
	Nearby(ctx context.Context, args []string) error
	NetStats(ctx context.Context) error
}

const (
	guestHelp  = "Available commands: login, signup, dev, nearby [lat lng], netstats, exit"
	memberHelp = "Available commands: home, trips [all|trips|bookings], mytrips, stats, account, plantrip, nearby [lat lng], whoami, netstats, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a.
//
// Commands that need a session are refused while logged out. Errors returned
// by handlers are ignored here; handlers report them to the user themselves.
// The loop exits on scanner EOF or on "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tm %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(memberHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "login":
			_ = a.Login(ctx)

		case "signup", "register":
			_ = a.Signup(ctx)

		case "dev":
			_ = a.DevBypass(ctx)

		case "nearby":
			_ = a.Nearby(ctx, args)

		case "netstats":
			_ = a.NetStats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "home", "trips", "mytrips", "stats", "account", "plantrip", "whoami", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			dispatchMember(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func dispatchMember(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "home":
		_ = a.Home(ctx)
	case "trips":
		filter := ""
		if len(args) > 0 {
			filter = args[0]
		}
		_ = a.Trips(ctx, filter)
	case "mytrips":
		_ = a.MyTrips(ctx)
	case "stats":
		_ = a.Stats(ctx)
	case "account":
		_ = a.Account(ctx)
	case "plantrip":
		_ = a.PlanTrip(ctx)
	case "whoami":
		_ = a.WhoAmI(ctx)
	case "logout":
		_ = a.Logout(ctx)
	}
}

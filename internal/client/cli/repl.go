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
	Ping(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	UploadAvatar(ctx context.Context) error
	AvatarURL(ctx context.Context) error
	DeleteAvatar(ctx context.Context) error
	Charities(ctx context.Context) error
	Charity(ctx context.Context) error
	AddCharity(ctx context.Context) error
	Posts(ctx context.Context) error
	Donate(ctx context.Context) error
	Donations(ctx context.Context) error
}

// runREPL reads one command per line and dispatches it to a. Commands that
// need a session are refused while anonymous. The loop exits on scanner EOF
// or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	anonymous := map[string]func(context.Context) error{
		"register":  a.Register,
		"login":     a.Login,
		"ping":      a.Ping,
		"charities": a.Charities,
		"posts":     a.Posts,
	}
	private := map[string]func(context.Context) error{
		"logout":      a.Logout,
		"profile":     a.Profile,
		"editprofile": a.EditProfile,
		"avatar":      a.UploadAvatar,
		"avatarurl":   a.AvatarURL,
		"rmavatar":    a.DeleteAvatar,
		"charity":     a.Charity,
		"addcharity":  a.AddCharity,
		"donate":      a.Donate,
		"donations":   a.Donations,
	}

	for {
		printlnFn(fmt.Sprintf("donatello %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, editprofile, avatar, avatarurl, rmavatar, charities, charity, addcharity, posts, donate, donations, ping, logout, exit")
			} else {
				printlnFn("Available commands: register, login, charities, posts, ping, exit")
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if fn, ok := anonymous[cmd]; ok {
			_ = fn(ctx)
			continue
		}
		if fn, ok := private[cmd]; ok {
			if !a.isLoggedIn() {
				printlnFn("Please log in first.")
				continue
			}
			_ = fn(ctx)
			continue
		}
		printlnFn("Unknown command:", cmd)
	}
}

package cli

import (
	"bufio"
	"context"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if user := a.session.User(); user != nil {
		return "(" + user.Username + ")"
	}
	if a.isLoggedIn() {
		return "(anonymous token)"
	}
	return ""
}

// Run starts the interactive loop and returns when the user exits or
// stdin closes.
func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) Root(ctx context.Context) {
	a.printf("Welcome to BookLog CLI (type 'help' for commands)\n")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		a.printf("booklog %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami(ctx)
		case "profile":
			a.updateProfile(ctx)
		case "verify":
			a.verifyEmail(ctx, args)
		case "delete-account":
			a.deleteAccount(ctx, args)

		case "office":
			a.showOffice(ctx)

		case "books":
			a.listBooks(ctx, args)
		case "authors":
			a.listAuthors(ctx, args)
		case "genres":
			a.listGenres(ctx)
		case "quotes":
			a.listQuotes(ctx)
		case "logs":
			a.listBookLogs(ctx)

		case "show":
			a.show(ctx, args)
		case "add":
			a.add(ctx, args)
		case "delete":
			a.delete(ctx, args)
		case "approve":
			a.moderate(ctx, args, true)
		case "reject":
			a.moderate(ctx, args, false)

		case "like":
			a.like(ctx, args)
		case "unlike":
			a.unlike(ctx, args)
		case "share":
			a.share(ctx, args)

		case "exit", "quit":
			a.printf("Bye!\n")
			return
		default:
			a.printf("Unknown command: %s\n", cmd)
		}
	}
}

func (a *App) help() {
	if a.isLoggedIn() {
		a.printf("Browsing: books, authors, genres, quotes, logs, show, office\n")
		a.printf("Editing:  add, delete, like, unlike, share, approve, reject\n")
		a.printf("Account:  whoami, profile, verify <key>, delete-account, logout, exit\n")
	} else {
		a.printf("Browsing: books, authors, genres, quotes, show\n")
		a.printf("Account:  register, login, verify <key>, exit\n")
	}
}

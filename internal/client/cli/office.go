package cli

import "context"

// showOffice renders the personal office: profile summary, journal entries
// and quotes in one view.
func (a *App) showOffice(ctx context.Context) {
	if !a.isLoggedIn() {
		a.printf("Not logged in.\n")
		return
	}

	view, err := a.office.View(ctx)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}

	a.printf("%s <%s>, %s\n", view.User.DisplayName(), view.User.Email, view.User.UserType.Label())
	if !view.User.EmailConfirmed {
		a.printf("Email not confirmed yet; run 'verify <key>'.\n")
	}

	a.printf("\nJournal (%d entries):\n", len(view.BookLogs))
	for _, l := range view.BookLogs {
		a.printf("  %d\t%s (score %d)\n", l.ID, l.Book.Title, l.Score)
	}

	a.printf("\nQuotes (%d):\n", len(view.Quotes))
	for _, q := range view.Quotes {
		a.printf("  %d\t%s: %q\n", q.ID, q.Book.Title, truncateNote(q.Note))
	}
}

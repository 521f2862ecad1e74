package cli

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/ameleshko/booklog-cli/internal/client/models"
)

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// truncateNote shortens long quote text for one-line listings. Works on
// runes, not bytes, so multibyte text is never cut mid-character.
func truncateNote(s string) string {
	r := []rune(s)
	if len(r) <= 60 {
		return s
	}
	return string(r[:57]) + "..."
}

// searchParams turns trailing command arguments into a ?search= filter.
func searchParams(args []string) url.Values {
	params := url.Values{}
	if len(args) > 0 {
		params.Set("search", strings.Join(args, " "))
	}
	return params
}

func (a *App) listBooks(ctx context.Context, args []string) {
	books, err := a.journal.Books().List(ctx, searchParams(args))
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	for _, b := range books {
		a.printf("%d\t%s (%s, %s)\n", b.ID, b.Title, b.Genre.Title, b.Type.Label())
	}
	if len(books) == 0 {
		a.printf("No books found.\n")
	}
}

func (a *App) listAuthors(ctx context.Context, args []string) {
	authors, err := a.journal.Authors().List(ctx, searchParams(args))
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	for _, author := range authors {
		a.printf("%d\t%s\n", author.ID, author.FullName())
	}
	if len(authors) == 0 {
		a.printf("No authors found.\n")
	}
}

func (a *App) listGenres(ctx context.Context) {
	genres, err := a.journal.Genres().List(ctx, nil)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	for _, g := range genres {
		a.printf("%d\t%s\n", g.ID, g.Title)
	}
}

func (a *App) listQuotes(ctx context.Context) {
	quotes, err := a.journal.Quotes().List(ctx, nil)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	for _, q := range quotes {
		a.printf("%d\t%s: %q (%d likes)\n", q.ID, q.Book.Title, truncateNote(q.Note), len(q.Likes))
	}
}

func (a *App) listBookLogs(ctx context.Context) {
	logs, err := a.journal.BookLogs().List(ctx, nil)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	for _, l := range logs {
		a.printf("%d\t%s (score %d)\n", l.ID, l.Book.Title, l.Score)
	}
}

func (a *App) show(ctx context.Context, args []string) {
	if len(args) < 2 {
		a.printf("Usage: show <book|author|genre|quote|log> <id>\n")
		return
	}
	id, err := parseID(args[1])
	if err != nil {
		a.printf("Bad id: %s\n", args[1])
		return
	}

	switch args[0] {
	case "book":
		b, err := a.journal.Books().Get(ctx, id)
		if err != nil {
			a.printf("error: %v\n", err)
			return
		}
		a.printf("Title:  %s\n", b.Title)
		a.printf("Genre:  %s\n", b.Genre.Title)
		a.printf("Type:   %s\n", b.Type.Label())
		if b.Symbols != nil {
			a.printf("Length: %d symbols\n", *b.Symbols)
		}
	case "author":
		author, err := a.journal.Authors().Get(ctx, id)
		if err != nil {
			a.printf("error: %v\n", err)
			return
		}
		a.printf("Name:    %s\n", author.FullName())
		if author.Country != "" {
			a.printf("Country: %s\n", author.Country)
		}
		if author.Birthday != nil {
			a.printf("Born:    %s\n", author.Birthday)
		}
		if author.Death != nil {
			a.printf("Died:    %s\n", author.Death)
		}
	case "genre":
		g, err := a.journal.Genres().Get(ctx, id)
		if err != nil {
			a.printf("error: %v\n", err)
			return
		}
		a.printf("%s\n%s\n", g.Title, g.Description)
	case "quote":
		q, err := a.journal.Quotes().Get(ctx, id)
		if err != nil {
			a.printf("error: %v\n", err)
			return
		}
		a.printf("%q\n", q.Note)
		a.printf("Book:    %s\n", q.Book.Title)
		a.printf("Private: %t\n", q.Private)
		for _, like := range q.Likes {
			a.printf("Liked by %s\n", like.User.DisplayName())
		}
	case "log":
		l, err := a.journal.BookLogs().Get(ctx, id)
		if err != nil {
			a.printf("error: %v\n", err)
			return
		}
		a.printf("Book:  %s\n", l.Book.Title)
		a.printf("Score: %d\n", l.Score)
		if l.Topic != "" {
			a.printf("Topic: %s\n", l.Topic)
		}
		if l.ThreeSentences != "" {
			a.printf("In three sentences: %s\n", l.ThreeSentences)
		}
		if l.Impressions != "" {
			a.printf("Impressions: %s\n", l.Impressions)
		}
	default:
		a.printf("Unknown resource: %s\n", args[0])
	}
}

func (a *App) add(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		a.printf("Not logged in.\n")
		return
	}
	if len(args) == 0 {
		a.printf("Usage: add <book|author|genre|quote|log>\n")
		return
	}

	switch args[0] {
	case "book":
		a.addBook(ctx)
	case "author":
		a.addAuthor(ctx)
	case "genre":
		a.addGenre(ctx)
	case "quote":
		a.addQuote(ctx)
	case "log":
		a.addBookLog(ctx)
	default:
		a.printf("Unknown resource: %s\n", args[0])
	}
}

func (a *App) addBook(ctx context.Context) {
	title, err := getSimpleText(a.reader, "Book title", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	authorID, err := a.promptID("Author id")
	if err != nil {
		return
	}
	genreID, err := a.promptID("Genre id")
	if err != nil {
		return
	}
	kind, err := getSimpleText(a.reader, "Type (fiction/non-fiction)", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	bookType := models.BookTypeFiction
	if kind == "non-fiction" {
		bookType = models.BookTypeNonFiction
	}

	book, err := a.journal.Books().Create(ctx, map[string]any{
		"title":  title,
		"author": authorID,
		"genre":  genreID,
		"type":   int(bookType),
	})
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	a.printf("Created book %d: %s (awaiting moderation)\n", book.ID, book.Title)
}

func (a *App) addAuthor(ctx context.Context) {
	first, err := getSimpleText(a.reader, "First name", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	last, err := getSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	country, err := getSimpleText(a.reader, "Country (optional)", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}

	payload := map[string]any{
		"first_name": first,
		"last_name":  last,
	}
	if country != "" {
		payload["country"] = country
	}
	author, err := a.journal.Authors().Create(ctx, payload)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	a.printf("Created author %d: %s (awaiting moderation)\n", author.ID, author.FullName())
}

func (a *App) addGenre(ctx context.Context) {
	title, err := getSimpleText(a.reader, "Genre title", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	description, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}

	genre, err := a.journal.Genres().Create(ctx, map[string]any{
		"title":       title,
		"description": description,
	})
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	a.printf("Created genre %d: %s\n", genre.ID, genre.Title)
}

func (a *App) addQuote(ctx context.Context) {
	bookID, err := a.promptID("Book id")
	if err != nil {
		return
	}
	note, err := GetMultiline(a.reader, "Quote text", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	private, err := getSimpleText(a.reader, "Private? (y/N)", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}

	quote, err := a.journal.Quotes().Create(ctx, map[string]any{
		"book":   bookID,
		"note":   note,
		"privat": strings.EqualFold(private, "y"),
	})
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	a.printf("Created quote %d\n", quote.ID)
}

func (a *App) addBookLog(ctx context.Context) {
	bookID, err := a.promptID("Book id")
	if err != nil {
		return
	}
	scoreText, err := getSimpleText(a.reader, "Score (1-10)", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	score, err := strconv.Atoi(scoreText)
	if err != nil {
		a.printf("Bad score: %s\n", scoreText)
		return
	}
	impressions, err := GetMultiline(a.reader, "Impressions", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}

	bl, err := a.journal.BookLogs().Create(ctx, map[string]any{
		"book":        bookID,
		"score":       score,
		"impressions": impressions,
	})
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	a.printf("Created journal entry %d\n", bl.ID)
}

func (a *App) delete(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		a.printf("Not logged in.\n")
		return
	}
	if len(args) < 2 {
		a.printf("Usage: delete <book|author|genre|quote|log> <id>\n")
		return
	}
	id, err := parseID(args[1])
	if err != nil {
		a.printf("Bad id: %s\n", args[1])
		return
	}

	switch args[0] {
	case "book":
		err = a.journal.Books().Delete(ctx, id)
	case "author":
		err = a.journal.Authors().Delete(ctx, id)
	case "genre":
		err = a.journal.Genres().Delete(ctx, id)
	case "quote":
		err = a.journal.Quotes().Delete(ctx, id)
	case "log":
		err = a.journal.BookLogs().Delete(ctx, id)
	default:
		a.printf("Unknown resource: %s\n", args[0])
		return
	}
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	a.printf("Deleted.\n")
}

// moderate approves or rejects a submitted book or author. The server
// enforces the staff requirement; the client just relays the verdict.
func (a *App) moderate(ctx context.Context, args []string, approve bool) {
	if !a.isLoggedIn() {
		a.printf("Not logged in.\n")
		return
	}
	if len(args) < 2 {
		a.printf("Usage: approve|reject <book|author> <id>\n")
		return
	}
	id, err := parseID(args[1])
	if err != nil {
		a.printf("Bad id: %s\n", args[1])
		return
	}

	switch args[0] {
	case "book":
		books := a.journal.Books()
		if approve {
			_, err = books.Approve(ctx, id)
		} else {
			_, err = books.Reject(ctx, id)
		}
	case "author":
		authors := a.journal.Authors()
		if approve {
			_, err = authors.Approve(ctx, id)
		} else {
			_, err = authors.Reject(ctx, id)
		}
	default:
		a.printf("Only books and authors are moderated.\n")
		return
	}
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	if approve {
		a.printf("Approved.\n")
	} else {
		a.printf("Rejected.\n")
	}
}

func (a *App) like(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		a.printf("Not logged in.\n")
		return
	}
	if len(args) == 0 {
		a.printf("Usage: like <quote id>\n")
		return
	}
	id, err := parseID(args[0])
	if err != nil {
		a.printf("Bad id: %s\n", args[0])
		return
	}

	l, err := a.journal.Likes().Create(ctx, map[string]any{"quote": id})
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	a.printf("Liked quote %d (like %d)\n", id, l.ID)
}

func (a *App) unlike(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		a.printf("Not logged in.\n")
		return
	}
	if len(args) == 0 {
		a.printf("Usage: unlike <like id>\n")
		return
	}
	id, err := parseID(args[0])
	if err != nil {
		a.printf("Bad id: %s\n", args[0])
		return
	}

	if err := a.journal.Likes().Delete(ctx, id); err != nil {
		a.printf("error: %v\n", err)
		return
	}
	a.printf("Like removed.\n")
}

func (a *App) share(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		a.printf("Not logged in.\n")
		return
	}
	if len(args) < 2 {
		a.printf("Usage: share <quote id> <destination>\n")
		return
	}
	id, err := parseID(args[0])
	if err != nil {
		a.printf("Bad id: %s\n", args[0])
		return
	}

	s, err := a.journal.Shares().Create(ctx, map[string]any{
		"quote":       id,
		"destination": args[1],
	})
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	a.printf("Shared quote %d to %s\n", id, s.Destination)
}

func (a *App) promptID(prompt string) (int64, error) {
	text, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return 0, err
	}
	id, err := parseID(text)
	if err != nil {
		a.printf("Bad id: %s\n", text)
		return 0, err
	}
	return id, nil
}

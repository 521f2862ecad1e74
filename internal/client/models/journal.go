package models

import "time"

// BookType distinguishes fiction from non-fiction.
type BookType int

const (
	BookTypeFiction BookType = iota
	BookTypeNonFiction
)

func (t BookType) Label() string {
	switch t {
	case BookTypeFiction:
		return "fiction"
	case BookTypeNonFiction:
		return "non-fiction"
	default:
		return "unknown"
	}
}

type Author struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Patronymic string `json:"patronymic,omitempty"`
	Birthday   *Date  `json:"birthday,omitempty"`
	Death      *Date  `json:"death,omitempty"`
	Country    string `json:"country,omitempty"`
	Photo      string `json:"photo,omitempty"`
	Status     string `json:"status,omitempty"`
}

func (a Author) FullName() string {
	if a.Patronymic != "" {
		return a.LastName + " " + a.FirstName + " " + a.Patronymic
	}
	return a.LastName + " " + a.FirstName
}

type Genre struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Book struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Author   int64    `json:"author"`
	Genre    Genre    `json:"genre"`
	Logo     string   `json:"logo,omitempty"`
	Symbols  *int     `json:"symbols,omitempty"`
	Type     BookType `json:"type"`
	TypeText string   `json:"type_text,omitempty"`
}

// BookLog is one reading-journal entry for a book.
type BookLog struct {
	ID                 int64     `json:"id"`
	Book               Book      `json:"book"`
	Start              *Date     `json:"start,omitempty"`
	End                *Date     `json:"end,omitempty"`
	Topic              string    `json:"topic,omitempty"`
	Score              int       `json:"score"`
	ThreeSentences     string    `json:"three_sentences,omitempty"`
	NewKnowledge       string    `json:"new_knowledge,omitempty"`
	TransformedMe      string    `json:"transformed_me,omitempty"`
	Impressions        string    `json:"impressions,omitempty"`
	Ideas              string    `json:"ideas,omitempty"`
	Heroes             string    `json:"heroes,omitempty"`
	Begin              string    `json:"begin,omitempty"`
	KeyEvents          string    `json:"key_events,omitempty"`
	MostImportantEvent string    `json:"most_important_event,omitempty"`
	Result             string    `json:"result,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Quote struct {
	ID      int64    `json:"id"`
	Book    Book     `json:"book"`
	Note    string   `json:"note"`
	Likes   []Like   `json:"likes,omitempty"`
	Shared  []Share  `json:"shared,omitempty"`
	Private bool     `json:"privat"`
	BookLog *BookLog `json:"book_log,omitempty"`
}

type Like struct {
	ID     int64     `json:"id"`
	User   User      `json:"user"`
	Quote  int64     `json:"quote"`
	Moment time.Time `json:"moment"`
}

type Share struct {
	ID          int64     `json:"id"`
	User        User      `json:"user"`
	Quote       int64     `json:"quote"`
	Moment      time.Time `json:"moment"`
	Destination string    `json:"destination"`
}

package view

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"
	"time"

	"github.com/Astemirdum/library-console/console/internal/model"
	"github.com/pkg/errors"
)

//go:embed templates/lists.html
var listFS embed.FS

var listTemplates = template.Must(template.New("lists").Funcs(template.FuncMap{
	"orNA": orNA,
}).ParseFS(listFS, "templates/lists.html"))

type Badge struct {
	Class string
	Text  string
}

func BookBadge(b model.Book) Badge {
	if b.Available() {
		return Badge{Class: "status-available", Text: "Available"}
	}
	return Badge{Class: "status-borrowed", Text: "Out of Stock"}
}

func BorrowingBadge(b model.Borrowing, now time.Time) Badge {
	switch {
	case b.Status == model.StatusReturned:
		return Badge{Class: "status-returned", Text: "Returned"}
	// Compares calendar dates like the api's /overdue, unlike a browser clock
	// comparison that flags a loan on its due day.
	case b.Overdue(now):
		return Badge{Class: "status-overdue", Text: "Overdue"}
	default:
		return Badge{Class: "status-borrowed", Text: "Borrowed"}
	}
}

type bookCard struct {
	model.Book
	Badge Badge
}

type borrowingCard struct {
	model.Borrowing
	Badge      Badge
	Returnable bool
}

// Renderer turns api lists into card markup for a region.
type Renderer struct {
	now func() time.Time
}

func NewRenderer(now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{now: now}
}

func (r *Renderer) Books(books []model.Book) (template.HTML, error) {
	cards := make([]bookCard, 0, len(books))
	for _, b := range books {
		cards = append(cards, bookCard{Book: b, Badge: BookBadge(b)})
	}
	return execute("books", cards)
}

func (r *Renderer) Authors(authors []model.Author) (template.HTML, error) {
	return execute("authors", authors)
}

func (r *Renderer) Borrowings(borrowings []model.Borrowing) (template.HTML, error) {
	now := r.now()
	cards := make([]borrowingCard, 0, len(borrowings))
	for _, b := range borrowings {
		cards = append(cards, borrowingCard{
			Borrowing:  b,
			Badge:      BorrowingBadge(b, now),
			Returnable: b.Status == model.StatusBorrowed,
		})
	}
	return execute("borrowings", cards)
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := listTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "render %s", name)
	}
	return template.HTML(buf.String()), nil //nolint:gosec
}

func orNA(v *int) string {
	if v == nil || *v == 0 {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

package model

import (
	"net/url"
	"strings"
	"time"
)

// Envelope wraps every library API response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count,omitempty"`
}

type Book struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	AuthorID        int    `json:"author_id"`
	ISBN            string `json:"isbn"`
	Genre           string `json:"genre"`
	PublicationYear *int   `json:"publication_year"`
	TotalCopies     int    `json:"total_copies"`
	CopiesAvailable int    `json:"copies_available"`
}

func (b Book) Available() bool {
	return b.CopiesAvailable > 0
}

type Author struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	BirthYear   *int   `json:"birth_year"`
	Nationality string `json:"nationality"`
	Bio         string `json:"bio"`
}

type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusReturned Status = "returned"
)

type Borrowing struct {
	ID            int    `json:"id"`
	BookID        int    `json:"book_id"`
	BorrowerName  string `json:"borrower_name"`
	BorrowerEmail string `json:"borrower_email"`
	BorrowDate    Date   `json:"borrow_date"`
	DueDate       Date   `json:"due_date"`
	ReturnDate    *Date  `json:"return_date"`
	Status        Status `json:"status"`
}

// Overdue reports a loan still out after its due date. The due day itself is not overdue.
func (b Borrowing) Overdue(now time.Time) bool {
	if b.Status != StatusBorrowed || b.DueDate.IsZero() {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return b.DueDate.Before(today)
}

type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d *Date) UnmarshalJSON(b []byte) (err error) {
	s := strings.Trim(string(b), "\"")
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	date, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	d.Time = date
	return
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

type CreateBookRequest struct {
	Title           string `json:"title" validate:"required"`
	AuthorID        *int   `json:"author_id" validate:"required"`
	ISBN            string `json:"isbn" validate:"required"`
	Genre           string `json:"genre"`
	PublicationYear *int   `json:"publication_year"`
	TotalCopies     *int   `json:"total_copies" validate:"omitempty,gte=0"`
	CopiesAvailable *int   `json:"copies_available" validate:"omitempty,gte=0"`
}

type CreateAuthorRequest struct {
	Name        string `json:"name" validate:"required"`
	Bio         string `json:"bio"`
	BirthYear   *int   `json:"birth_year"`
	Nationality string `json:"nationality"`
}

type CreateBorrowingRequest struct {
	BookID        *int   `json:"book_id" validate:"required"`
	BorrowerName  string `json:"borrower_name" validate:"required"`
	BorrowerEmail string `json:"borrower_email" validate:"omitempty,email"`
}

type BookQuery struct {
	Query string
	Genre string
}

// Values omits empty parameters.
func (q BookQuery) Values() url.Values {
	v := url.Values{}
	if q.Query != "" {
		v.Set("q", q.Query)
	}
	if q.Genre != "" {
		v.Set("genre", q.Genre)
	}
	return v
}

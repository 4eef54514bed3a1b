package view

import (
	"strconv"
	"strings"

	"github.com/Astemirdum/library-console/console/internal/model"
)

// Forms carry raw input values exactly as typed.

type BookForm struct {
	Title    string `form:"title"`
	AuthorID string `form:"author_id"`
	ISBN     string `form:"isbn"`
	Genre    string `form:"genre"`
	Year     string `form:"publication_year"`
	Copies   string `form:"copies"`
}

// Request maps the copies input onto both total and available copies.
func (f BookForm) Request() model.CreateBookRequest {
	copies := parseInt(f.Copies)
	return model.CreateBookRequest{
		Title:           f.Title,
		AuthorID:        parseInt(f.AuthorID),
		ISBN:            f.ISBN,
		Genre:           f.Genre,
		PublicationYear: parseYear(f.Year),
		TotalCopies:     copies,
		CopiesAvailable: copies,
	}
}

type AuthorForm struct {
	Name        string `form:"name"`
	Bio         string `form:"bio"`
	BirthYear   string `form:"birth_year"`
	Nationality string `form:"nationality"`
}

func (f AuthorForm) Request() model.CreateAuthorRequest {
	return model.CreateAuthorRequest{
		Name:        f.Name,
		Bio:         f.Bio,
		BirthYear:   parseYear(f.BirthYear),
		Nationality: f.Nationality,
	}
}

type BorrowForm struct {
	BookID        string `form:"book_id"`
	BorrowerName  string `form:"borrower_name"`
	BorrowerEmail string `form:"borrower_email"`
}

func (f BorrowForm) Request() model.CreateBorrowingRequest {
	return model.CreateBorrowingRequest{
		BookID:        parseInt(f.BookID),
		BorrowerName:  f.BorrowerName,
		BorrowerEmail: f.BorrowerEmail,
	}
}

// parseInt reads the leading integer of s, so "12abc" is 12.
// Empty or non-numeric input is absent.
func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}

// parseYear also treats 0 as absent.
func parseYear(s string) *int {
	n := parseInt(s)
	if n == nil || *n == 0 {
		return nil
	}
	return n
}

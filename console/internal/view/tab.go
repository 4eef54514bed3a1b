package view

import (
	"github.com/Astemirdum/library-console/console/internal/errs"
	"github.com/pkg/errors"
)

// Region is a list container on the page.
type Region uint8

const (
	RegionBooks Region = iota + 1
	RegionAuthors
	RegionBorrowings
)

func (r Region) String() string {
	switch r {
	case RegionBooks:
		return "booksList"
	case RegionAuthors:
		return "authorsList"
	case RegionBorrowings:
		return "borrowingsList"
	default:
		return ""
	}
}

type Tab uint8

const (
	TabBooks Tab = iota + 1
	TabAuthors
	TabBorrowings
)

var tabs = []Tab{TabBooks, TabAuthors, TabBorrowings}

// Tabs lists tabs in page order.
func Tabs() []Tab {
	out := make([]Tab, len(tabs))
	copy(out, tabs)
	return out
}

func ParseTab(s string) (Tab, error) {
	for _, t := range tabs {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, errors.Wrapf(errs.ErrBadTab, "%q", s)
}

func (t Tab) String() string {
	switch t {
	case TabBooks:
		return "books"
	case TabAuthors:
		return "authors"
	case TabBorrowings:
		return "borrowings"
	default:
		return ""
	}
}

func (t Tab) Title() string {
	switch t {
	case TabBooks:
		return "Books"
	case TabAuthors:
		return "Authors"
	case TabBorrowings:
		return "Borrowings"
	default:
		return ""
	}
}

// Region is the content region shown while the tab is active.
func (t Tab) Region() Region {
	switch t {
	case TabBooks:
		return RegionBooks
	case TabAuthors:
		return RegionAuthors
	case TabBorrowings:
		return RegionBorrowings
	default:
		return 0
	}
}

type Modal uint8

const (
	ModalNone Modal = iota
	ModalAddBook
	ModalAddAuthor
	ModalBorrowBook
)

func ParseModal(s string) (Modal, error) {
	for _, m := range []Modal{ModalAddBook, ModalAddAuthor, ModalBorrowBook} {
		if m.String() == s {
			return m, nil
		}
	}
	return ModalNone, errors.Wrapf(errs.ErrBadModal, "%q", s)
}

func (m Modal) String() string {
	switch m {
	case ModalAddBook:
		return "addBookModal"
	case ModalAddAuthor:
		return "addAuthorModal"
	case ModalBorrowBook:
		return "borrowBookModal"
	default:
		return ""
	}
}

// Select is a dropdown filled from the api.
type Select uint8

const (
	SelectBookAuthor Select = iota + 1
	SelectBorrowBook
)

func (s Select) String() string {
	switch s {
	case SelectBookAuthor:
		return "bookAuthor"
	case SelectBorrowBook:
		return "borrowBookSelect"
	default:
		return ""
	}
}

type BorrowingFilter string

const (
	FilterAll      BorrowingFilter = "all"
	FilterBorrowed BorrowingFilter = "borrowed"
	FilterReturned BorrowingFilter = "returned"
	FilterOverdue  BorrowingFilter = "overdue"
)

func BorrowingFilters() []BorrowingFilter {
	return []BorrowingFilter{FilterAll, FilterBorrowed, FilterReturned, FilterOverdue}
}

// ParseBorrowingFilter treats an empty string as FilterAll.
func ParseBorrowingFilter(s string) (BorrowingFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range BorrowingFilters() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.Wrapf(errs.ErrBadFilter, "%q", s)
}

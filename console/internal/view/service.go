package view

import (
	"context"

	"github.com/Astemirdum/library-console/console/internal/model"
	"github.com/Astemirdum/library-console/console/internal/service/activity"
	"github.com/Astemirdum/library-console/console/internal/service/library"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ LibraryService = (*library.Service)(nil)
	_ LibraryService = (*activity.Service)(nil)
)

type LibraryService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	SearchBooks(ctx context.Context, q model.BookQuery) ([]model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) (model.Book, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (model.Author, error)
	ListAuthorBooks(ctx context.Context, authorID int) ([]model.Book, error)
	ListBorrowings(ctx context.Context) ([]model.Borrowing, error)
	ListOverdueBorrowings(ctx context.Context) ([]model.Borrowing, error)
	CreateBorrowing(ctx context.Context, req model.CreateBorrowingRequest) (model.Borrowing, error)
	ReturnBorrowing(ctx context.Context, id int) (model.Borrowing, error)
}

type Validator interface {
	Validate(i interface{}) error
}

package view

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Astemirdum/library-console/console/internal/errs"
	"github.com/Astemirdum/library-console/console/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Controller turns page actions into library api calls and view updates.
// It keeps no state of its own, the View owns everything that is displayed.
type Controller struct {
	svc       LibraryService
	view      View
	validator Validator
	render    *Renderer
	log       *zap.Logger
}

func NewController(svc LibraryService, v View, validator Validator, log *zap.Logger) *Controller {
	return NewControllerWithClock(svc, v, validator, log, time.Now)
}

func NewControllerWithClock(svc LibraryService, v View, validator Validator, log *zap.Logger, now func() time.Time) *Controller {
	return &Controller{
		svc:       svc,
		view:      v,
		validator: validator,
		render:    NewRenderer(now),
		log:       log.Named("controller"),
	}
}

// Init loads every list the way a fresh page does. The loads are independent,
// one failing does not cancel the others.
func (c *Controller) Init(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.LoadBooks(ctx) })
	g.Go(func() error { return c.LoadAuthors(ctx) })
	g.Go(func() error { return c.LoadBorrowings(ctx, FilterAll) })
	return g.Wait()
}

func (c *Controller) SelectTab(tab Tab) {
	c.view.ActivateTab(tab)
}

func (c *Controller) LoadBooks(ctx context.Context) error {
	books, err := c.svc.ListBooks(ctx)
	if err != nil {
		return c.fail("load books", "Failed to load books", err)
	}
	return c.showBooks(books)
}

func (c *Controller) SearchBooks(ctx context.Context, query, genre string) error {
	books, err := c.svc.SearchBooks(ctx, model.BookQuery{Query: query, Genre: genre})
	if err != nil {
		return c.fail("search books", "Failed to search books", err)
	}
	return c.showBooks(books)
}

// ViewAuthorBooks switches to the books tab and shows only the author's books.
func (c *Controller) ViewAuthorBooks(ctx context.Context, authorID int) error {
	books, err := c.svc.ListAuthorBooks(ctx, authorID)
	if err != nil {
		return c.fail("author books", "Failed to load author books", err)
	}
	c.view.ActivateTab(TabBooks)
	return c.showBooks(books)
}

func (c *Controller) LoadAuthors(ctx context.Context) error {
	authors, err := c.svc.ListAuthors(ctx)
	if err != nil {
		return c.fail("load authors", "Failed to load authors", err)
	}
	markup, err := c.render.Authors(authors)
	if err != nil {
		return c.fail("render authors", "Failed to load authors", err)
	}
	c.view.Render(RegionAuthors, markup)
	return nil
}

// LoadBorrowings fetches /borrowings/overdue for FilterOverdue. Borrowed and
// returned are filtered here from the full list.
func (c *Controller) LoadBorrowings(ctx context.Context, filter BorrowingFilter) error {
	var (
		borrowings []model.Borrowing
		err        error
	)
	if filter == FilterOverdue {
		borrowings, err = c.svc.ListOverdueBorrowings(ctx)
	} else {
		borrowings, err = c.svc.ListBorrowings(ctx)
	}
	if err != nil {
		return c.fail("load borrowings", "Failed to load borrowings", err)
	}

	switch filter {
	case FilterBorrowed:
		borrowings = filterStatus(borrowings, model.StatusBorrowed)
	case FilterReturned:
		borrowings = filterStatus(borrowings, model.StatusReturned)
	}

	markup, err := c.render.Borrowings(borrowings)
	if err != nil {
		return c.fail("render borrowings", "Failed to load borrowings", err)
	}
	c.view.Render(RegionBorrowings, markup)
	return nil
}

// ShowAddBookModal fills the author dropdown before opening. A failed load
// still opens the modal with whatever options were there.
func (c *Controller) ShowAddBookModal(ctx context.Context) {
	authors, err := c.svc.ListAuthors(ctx)
	if err != nil {
		c.log.Error("load authors for dropdown", zap.Error(err))
	} else {
		opts := make([]Option, 0, len(authors))
		for _, a := range authors {
			opts = append(opts, Option{Value: strconv.Itoa(a.ID), Label: a.Name})
		}
		c.view.SetOptions(SelectBookAuthor, opts)
	}
	c.view.ShowModal(ModalAddBook)
}

func (c *Controller) ShowAddAuthorModal() {
	c.view.ShowModal(ModalAddAuthor)
}

// ShowBorrowBookModal offers only books with a copy on the shelf.
func (c *Controller) ShowBorrowBookModal(ctx context.Context) {
	books, err := c.svc.ListBooks(ctx)
	if err != nil {
		c.log.Error("load books for borrowing", zap.Error(err))
	} else {
		opts := make([]Option, 0, len(books))
		for _, b := range books {
			if !b.Available() {
				continue
			}
			opts = append(opts, Option{
				Value: strconv.Itoa(b.ID),
				Label: fmt.Sprintf("%s (%d available)", b.Title, b.CopiesAvailable),
			})
		}
		c.view.SetOptions(SelectBorrowBook, opts)
	}
	c.view.ShowModal(ModalBorrowBook)
}

func (c *Controller) CloseModal(modal Modal) {
	c.view.CloseModal(modal)
}

func (c *Controller) HandleAddBook(ctx context.Context, form BookForm) error {
	req := form.Request()
	if err := c.validate(req); err != nil {
		return err
	}
	if _, err := c.svc.CreateBook(ctx, req); err != nil {
		return c.fail("add book", "Failed to add book", err)
	}
	c.done(ModalAddBook, "Book added successfully!")
	return c.LoadBooks(ctx)
}

func (c *Controller) HandleAddAuthor(ctx context.Context, form AuthorForm) error {
	req := form.Request()
	if err := c.validate(req); err != nil {
		return err
	}
	if _, err := c.svc.CreateAuthor(ctx, req); err != nil {
		return c.fail("add author", "Failed to add author", err)
	}
	c.done(ModalAddAuthor, "Author added successfully!")
	return c.LoadAuthors(ctx)
}

func (c *Controller) HandleBorrowBook(ctx context.Context, form BorrowForm) error {
	req := form.Request()
	if err := c.validate(req); err != nil {
		return err
	}
	if _, err := c.svc.CreateBorrowing(ctx, req); err != nil {
		return c.fail("borrow book", "Failed to borrow book", err)
	}
	c.done(ModalBorrowBook, "Book borrowed successfully!")
	return c.reloadCirculation(ctx)
}

func (c *Controller) DeleteBook(ctx context.Context, id int, confirm Confirm) error {
	if !confirm("Are you sure you want to delete this book?") {
		return errs.ErrDeclined
	}
	if _, err := c.svc.DeleteBook(ctx, id); err != nil {
		return c.fail("delete book", "Failed to delete book", err)
	}
	c.view.Alert(Success("Book deleted successfully!"))
	return c.LoadBooks(ctx)
}

func (c *Controller) ReturnBook(ctx context.Context, id int, confirm Confirm) error {
	if !confirm("Mark this book as returned?") {
		return errs.ErrDeclined
	}
	if _, err := c.svc.ReturnBorrowing(ctx, id); err != nil {
		return c.fail("return book", "Failed to return book", err)
	}
	c.view.Alert(Success("Book returned successfully!"))
	return c.reloadCirculation(ctx)
}

// reloadCirculation refreshes loans and the book counts they changed.
func (c *Controller) reloadCirculation(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.LoadBorrowings(ctx, FilterAll) })
	g.Go(func() error { return c.LoadBooks(ctx) })
	return g.Wait()
}

func (c *Controller) showBooks(books []model.Book) error {
	markup, err := c.render.Books(books)
	if err != nil {
		return c.fail("render books", "Failed to load books", err)
	}
	c.view.Render(RegionBooks, markup)
	return nil
}

func (c *Controller) validate(req interface{}) error {
	if c.validator == nil {
		return nil
	}
	if err := c.validator.Validate(req); err != nil {
		c.view.Alert(Failure(err.Error()))
		return err
	}
	return nil
}

func (c *Controller) done(modal Modal, message string) {
	c.view.Alert(Success(message))
	c.view.CloseModal(modal)
	c.view.ResetForm(modal)
}

// fail surfaces err. The api's own message is shown verbatim, anything else
// is logged and replaced by the generic fallback.
func (c *Controller) fail(op, fallback string, err error) error {
	var apiErr *errs.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		c.log.Warn(op, zap.Int("status", apiErr.Status), zap.String("message", apiErr.Message))
		c.view.Alert(Failure(apiErr.Message))
		return err
	}
	c.log.Error(op, zap.Error(err))
	c.view.Alert(Failure(fallback))
	return err
}

func filterStatus(borrowings []model.Borrowing, status model.Status) []model.Borrowing {
	out := make([]model.Borrowing, 0, len(borrowings))
	for _, b := range borrowings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

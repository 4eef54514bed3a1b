package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/library-console/console/internal/errs"
	"github.com/Astemirdum/library-console/console/internal/handler"
	"github.com/Astemirdum/library-console/console/internal/model"
	"github.com/Astemirdum/library-console/console/internal/view"
	service_mocks "github.com/Astemirdum/library-console/console/internal/view/mocks"
	"github.com/Astemirdum/library-console/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fixedNow() time.Time { return time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC) }

func newRouter(t *testing.T) (*echo.Echo, *service_mocks.MockLibraryService) {
	t.Helper()
	c := gomock.NewController(t)
	svc := service_mocks.NewMockLibraryService(c)
	log := zap.NewNop()
	page := handler.NewPage()
	ctrl := view.NewControllerWithClock(svc, page, validate.NewCustomValidator(), log, fixedNow)
	return handler.New(ctrl, page, log).NewRouter(), svc
}

func do(e *echo.Echo, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

var dune = model.Book{ID: 1, Title: "Dune", AuthorID: 2, ISBN: "978-0441", TotalCopies: 2, CopiesAvailable: 1}

func TestHandler_Health(t *testing.T) {
	e, _ := newRouter(t)
	rec := do(e, http.MethodGet, "/manage/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestHandler_Index(t *testing.T) {
	e, svc := newRouter(t)
	svc.EXPECT().ListBooks(gomock.Any()).Return([]model.Book{dune}, nil)
	svc.EXPECT().ListAuthors(gomock.Any()).Return([]model.Author{}, nil)
	svc.EXPECT().ListBorrowings(gomock.Any()).Return([]model.Borrowing{}, nil)

	rec := do(e, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `id="booksList"`)
	require.Contains(t, body, "Dune")
	require.Contains(t, body, "No authors found")
	require.Contains(t, body, "No borrowing records found")
	require.Contains(t, body, `class="tab-btn active" href="/tabs/books"`)
}

func TestHandler_BadInput(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
	}{
		{name: "unknown tab", method: http.MethodGet, target: "/tabs/shelves"},
		{name: "unknown filter", method: http.MethodGet, target: "/borrowings?filter=lost"},
		{name: "unknown modal", method: http.MethodPost, target: "/modals/loginModal/close"},
		{name: "bad book id", method: http.MethodPost, target: "/books/abc/delete"},
		{name: "bad borrowing id", method: http.MethodPost, target: "/borrowings/0/return"},
		{name: "bad author id", method: http.MethodGet, target: "/authors/x/books"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newRouter(t)
			rec := do(e, tt.method, tt.target, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_DeleteBookConfirmation(t *testing.T) {
	e, svc := newRouter(t)

	rec := do(e, http.MethodPost, "/books/1/delete", url.Values{})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Are you sure you want to delete this book?")
	require.Contains(t, body, `action="/books/1/delete"`)
	require.Contains(t, body, `name="confirm" value="yes"`)

	svc.EXPECT().DeleteBook(gomock.Any(), 1).Return(dune, nil)
	svc.EXPECT().ListBooks(gomock.Any()).Return([]model.Book{}, nil)

	rec = do(e, http.MethodPost, "/books/1/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	require.Contains(t, body, "✓ Book deleted successfully!")
	require.Contains(t, body, "No books found")
	require.NotContains(t, body, "Are you sure")

	rec = do(e, http.MethodGet, "/tabs/books", nil)
	require.NotContains(t, rec.Body.String(), "Book deleted successfully!")
}

func TestHandler_ReturnBorrowing(t *testing.T) {
	e, svc := newRouter(t)
	back := model.Borrowing{ID: 4, BookID: 1, BorrowerName: "Ann", Status: model.StatusReturned,
		BorrowDate: model.NewDate(2024, time.March, 1), DueDate: model.NewDate(2024, time.March, 15)}
	svc.EXPECT().ReturnBorrowing(gomock.Any(), 4).Return(back, nil)
	svc.EXPECT().ListBorrowings(gomock.Any()).Return([]model.Borrowing{back}, nil)
	svc.EXPECT().ListBooks(gomock.Any()).Return([]model.Book{dune}, nil)

	rec := do(e, http.MethodPost, "/borrowings/4/return", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "✓ Book returned successfully!")
	require.Contains(t, rec.Body.String(), "Borrowing #4")
}

func TestHandler_CreateBook(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		e, svc := newRouter(t)
		three, two := 3, 2
		svc.EXPECT().CreateBook(gomock.Any(), model.CreateBookRequest{
			Title: "Dune", AuthorID: &two, ISBN: "978-0441", TotalCopies: &three, CopiesAvailable: &three,
		}).Return(dune, nil)
		svc.EXPECT().ListBooks(gomock.Any()).Return([]model.Book{dune}, nil)

		rec := do(e, http.MethodPost, "/books", url.Values{
			"title": {"Dune"}, "author_id": {"2"}, "isbn": {"978-0441"}, "publication_year": {""}, "copies": {"3"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, "✓ Book added successfully!")
		require.NotContains(t, body, `id="addBookModal"`)
	})

	t.Run("validation keeps the modal and values", func(t *testing.T) {
		e, svc := newRouter(t)
		svc.EXPECT().ListAuthors(gomock.Any()).Return([]model.Author{{ID: 2, Name: "Frank Herbert"}}, nil)
		do(e, http.MethodGet, "/books/new", nil)

		rec := do(e, http.MethodPost, "/books", url.Values{"title": {"Dune"}, "copies": {"1"}})
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, "✗ author_id is required; isbn is required")
		require.Contains(t, body, `id="addBookModal"`)
		require.Contains(t, body, `value="Dune"`)
	})

	t.Run("server message", func(t *testing.T) {
		e, svc := newRouter(t)
		svc.EXPECT().CreateBook(gomock.Any(), gomock.Any()).
			Return(model.Book{}, &errs.APIError{Op: "create book", Status: http.StatusBadRequest, Message: "Book with this ISBN already exists"})

		rec := do(e, http.MethodPost, "/books", url.Values{"title": {"Dune"}, "author_id": {"2"}, "isbn": {"978-0441"}})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "✗ Book with this ISBN already exists")
	})
}

func TestHandler_Modals(t *testing.T) {
	e, svc := newRouter(t)
	svc.EXPECT().ListBooks(gomock.Any()).Return([]model.Book{
		dune,
		{ID: 2, Title: "Emma", TotalCopies: 1, CopiesAvailable: 0},
	}, nil)

	rec := do(e, http.MethodGet, "/borrowings/new", nil)
	body := rec.Body.String()
	require.Contains(t, body, `id="borrowBookModal"`)
	require.Contains(t, body, "Dune (1 available)")
	require.NotContains(t, body, "Emma")

	rec = do(e, http.MethodPost, "/modals/borrowBookModal/close", url.Values{})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), `id="borrowBookModal"`)

	rec = do(e, http.MethodGet, "/authors/new", nil)
	require.Contains(t, rec.Body.String(), `id="addAuthorModal"`)
}

func TestHandler_Borrowings(t *testing.T) {
	e, svc := newRouter(t)
	svc.EXPECT().ListOverdueBorrowings(gomock.Any()).Return([]model.Borrowing{}, nil)

	rec := do(e, http.MethodGet, "/borrowings?filter=overdue", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "No borrowing records found")
	require.Contains(t, body, `<option value="overdue" selected>`)
	require.Contains(t, body, `class="tab-btn active" href="/tabs/borrowings"`)
}

func TestHandler_SearchAndAuthorBooks(t *testing.T) {
	e, svc := newRouter(t)
	svc.EXPECT().SearchBooks(gomock.Any(), model.BookQuery{Query: "dune", Genre: "Sci-Fi"}).Return([]model.Book{dune}, nil)
	rec := do(e, http.MethodGet, "/books/search?q=dune&genre=Sci-Fi", nil)
	require.Contains(t, rec.Body.String(), "Dune")
	require.Contains(t, rec.Body.String(), `value="dune"`)

	svc.EXPECT().ListAuthorBooks(gomock.Any(), 7).Return([]model.Book{}, nil)
	do(e, http.MethodGet, "/tabs/authors", nil)
	rec = do(e, http.MethodGet, "/authors/7/books", nil)
	require.Contains(t, rec.Body.String(), `class="tab-btn active" href="/tabs/books"`)
	require.Contains(t, rec.Body.String(), "No books found")
}

func TestHandler_IndexResetsPage(t *testing.T) {
	e, svc := newRouter(t)
	overdue := model.Borrowing{ID: 3, BookID: 1, BorrowerName: "Ann", Status: model.StatusBorrowed,
		BorrowDate: model.NewDate(2024, time.March, 1), DueDate: model.NewDate(2024, time.March, 15)}
	returned := model.Borrowing{ID: 9, BookID: 2, BorrowerName: "Bob", Status: model.StatusReturned,
		BorrowDate: model.NewDate(2024, time.March, 1), DueDate: model.NewDate(2024, time.March, 15)}

	svc.EXPECT().ListOverdueBorrowings(gomock.Any()).Return([]model.Borrowing{overdue}, nil)
	do(e, http.MethodGet, "/borrowings?filter=overdue", nil)
	svc.EXPECT().SearchBooks(gomock.Any(), gomock.Any()).Return([]model.Book{dune}, nil)
	do(e, http.MethodGet, "/books/search?q=dune", nil)
	rec := do(e, http.MethodGet, "/authors/new", nil)
	require.Contains(t, rec.Body.String(), `id="addAuthorModal"`)

	svc.EXPECT().ListBooks(gomock.Any()).Return([]model.Book{dune}, nil)
	svc.EXPECT().ListAuthors(gomock.Any()).Return([]model.Author{}, nil)
	svc.EXPECT().ListBorrowings(gomock.Any()).Return([]model.Borrowing{overdue, returned}, nil)

	rec = do(e, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `class="tab-btn active" href="/tabs/books"`)
	require.Contains(t, body, `<option value="all" selected>`)
	require.NotContains(t, body, `<option value="overdue" selected>`)
	require.NotContains(t, body, `id="addAuthorModal"`)
	require.NotContains(t, body, `value="dune"`)
	require.Contains(t, body, "Borrowing #9")
}

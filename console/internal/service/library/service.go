package library

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Astemirdum/library-console/console/config"
	"github.com/Astemirdum/library-console/console/internal/errs"
	"github.com/Astemirdum/library-console/console/internal/model"
	"github.com/Astemirdum/library-console/pkg/circuit_breaker"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Service struct {
	log     *zap.Logger
	client  *http.Client
	baseURL *url.URL
	cb      circuit_breaker.CircuitBreaker
}

func NewService(log *zap.Logger, cfg config.Config) (*Service, error) {
	base, err := url.Parse(cfg.LibraryAPI.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse library api url")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("library api url %q must be absolute", cfg.LibraryAPI.BaseURL)
	}
	return &Service{
		log:     log.Named("library"),
		client:  &http.Client{Timeout: cfg.LibraryAPI.Timeout},
		baseURL: base,
		cb:      circuit_breaker.NewWithConfig(cfg.Breaker),
	}, nil
}

func (s *Service) CB() circuit_breaker.CircuitBreaker {
	return s.cb
}

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return call[[]model.Book](ctx, s, "list books", http.MethodGet, s.endpoint(nil, "books"), nil)
}

func (s *Service) SearchBooks(ctx context.Context, q model.BookQuery) ([]model.Book, error) {
	return call[[]model.Book](ctx, s, "search books", http.MethodGet, s.endpoint(q.Values(), "books", "search"), nil)
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return call[model.Book](ctx, s, "create book", http.MethodPost, s.endpoint(nil, "books"), req)
}

func (s *Service) DeleteBook(ctx context.Context, id int) (model.Book, error) {
	return call[model.Book](ctx, s, "delete book", http.MethodDelete, s.endpoint(nil, "books", strconv.Itoa(id)), nil)
}

func (s *Service) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return call[[]model.Author](ctx, s, "list authors", http.MethodGet, s.endpoint(nil, "authors"), nil)
}

func (s *Service) CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (model.Author, error) {
	return call[model.Author](ctx, s, "create author", http.MethodPost, s.endpoint(nil, "authors"), req)
}

func (s *Service) ListAuthorBooks(ctx context.Context, authorID int) ([]model.Book, error) {
	return call[[]model.Book](ctx, s, "list author books", http.MethodGet, s.endpoint(nil, "authors", strconv.Itoa(authorID), "books"), nil)
}

func (s *Service) ListBorrowings(ctx context.Context) ([]model.Borrowing, error) {
	return call[[]model.Borrowing](ctx, s, "list borrowings", http.MethodGet, s.endpoint(nil, "borrowings"), nil)
}

func (s *Service) ListOverdueBorrowings(ctx context.Context) ([]model.Borrowing, error) {
	return call[[]model.Borrowing](ctx, s, "list overdue borrowings", http.MethodGet, s.endpoint(nil, "borrowings", "overdue"), nil)
}

func (s *Service) CreateBorrowing(ctx context.Context, req model.CreateBorrowingRequest) (model.Borrowing, error) {
	return call[model.Borrowing](ctx, s, "create borrowing", http.MethodPost, s.endpoint(nil, "borrowings"), req)
}

func (s *Service) ReturnBorrowing(ctx context.Context, id int) (model.Borrowing, error) {
	return call[model.Borrowing](ctx, s, "return borrowing", http.MethodPut, s.endpoint(nil, "borrowings", strconv.Itoa(id), "return"), nil)
}

func (s *Service) endpoint(query url.Values, elem ...string) string {
	u := s.baseURL.JoinPath(elem...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// call sends one request and unwraps the envelope. The envelope is decoded whatever the status,
// since the api reports 4xx failures as success=false bodies. Only transport and decode failures
// count against the circuit breaker.
func call[T any](ctx context.Context, s *Service, op, method, endpoint string, body any) (T, error) {
	var zero T
	var reader io.Reader = http.NoBody
	if body != nil {
		b := bytes.NewBuffer(nil)
		if err := json.NewEncoder(b).Encode(body); err != nil {
			return zero, errors.Wrap(err, op)
		}
		reader = b
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return zero, errors.Wrap(err, op)
	}
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	}

	var (
		env    model.Envelope[T]
		status int
	)
	if err := s.cb.Call(func() error {
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		status = resp.StatusCode
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return errors.Wrapf(err, "decode response, status %d", resp.StatusCode)
		}
		return nil
	}); err != nil {
		return zero, errors.Wrap(err, op)
	}

	s.log.Debug(op, zap.String("method", method), zap.String("url", endpoint), zap.Int("status", status), zap.Bool("success", env.Success))
	if !env.Success {
		return zero, &errs.APIError{Op: op, Status: status, Message: env.Message}
	}
	return env.Data, nil
}

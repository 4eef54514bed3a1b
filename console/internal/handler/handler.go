package handler

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/Astemirdum/library-console/console/internal/errs"
	"github.com/Astemirdum/library-console/console/internal/view"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templatesFS embed.FS

const pageTemplate = "index"

type Handler struct {
	ctrl *view.Controller
	page *Page
	tmpl *template.Template
	log  *zap.Logger
}

func New(ctrl *view.Controller, page *Page, log *zap.Logger) *Handler {
	return &Handler{
		ctrl: ctrl,
		page: page,
		tmpl: template.Must(template.ParseFS(templatesFS, "templates/index.html")),
		log:  log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const (
		baseRPS = 10
		pageRPS = 50
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost},
	}))
	e.Renderer = h

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)

	pages := e.Group("",
		middleware.RequestLoggerWithConfig(requestLoggerConfig(h.log.Named("echo"))),
		middleware.RequestID(),
		newRateLimiterMW(pageRPS),
	)
	pages.GET("/", h.Index)
	pages.GET("/tabs/:tab", h.SelectTab)

	pages.GET("/books/search", h.SearchBooks)
	pages.GET("/books/new", h.NewBook)
	pages.POST("/books", h.CreateBook)
	pages.POST("/books/:id/delete", h.DeleteBook)

	pages.GET("/authors/new", h.NewAuthor)
	pages.POST("/authors", h.CreateAuthor)
	pages.GET("/authors/:id/books", h.AuthorBooks)

	pages.GET("/borrowings", h.Borrowings)
	pages.GET("/borrowings/new", h.NewBorrowing)
	pages.POST("/borrowings", h.CreateBorrowing)
	pages.POST("/borrowings/:id/return", h.ReturnBorrowing)

	pages.POST("/modals/:modal/close", h.CloseModal)

	return e
}

// Render implements echo.Renderer.
func (h *Handler) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return h.tmpl.ExecuteTemplate(w, name, data)
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Index(c echo.Context) error {
	h.page.Reset()
	return h.respond(c, h.ctrl.Init(c.Request().Context()))
}

func (h *Handler) SelectTab(c echo.Context) error {
	tab, err := view.ParseTab(c.Param("tab"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.ctrl.SelectTab(tab)
	return h.respond(c, nil)
}

func (h *Handler) SearchBooks(c echo.Context) error {
	query, genre := c.QueryParam("q"), c.QueryParam("genre")
	h.page.setSearch(query, genre)
	h.ctrl.SelectTab(view.TabBooks)
	return h.respond(c, h.ctrl.SearchBooks(c.Request().Context(), query, genre))
}

func (h *Handler) NewBook(c echo.Context) error {
	h.ctrl.ShowAddBookModal(c.Request().Context())
	return h.respond(c, nil)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var form view.BookForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	h.page.keepBookForm(form)
	return h.respond(c, h.ctrl.HandleAddBook(c.Request().Context(), form))
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return h.respond(c, h.ctrl.DeleteBook(c.Request().Context(), id, h.confirm(c)))
}

func (h *Handler) NewAuthor(c echo.Context) error {
	h.ctrl.ShowAddAuthorModal()
	return h.respond(c, nil)
}

func (h *Handler) CreateAuthor(c echo.Context) error {
	var form view.AuthorForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	h.page.keepAuthorForm(form)
	return h.respond(c, h.ctrl.HandleAddAuthor(c.Request().Context(), form))
}

func (h *Handler) AuthorBooks(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return h.respond(c, h.ctrl.ViewAuthorBooks(c.Request().Context(), id))
}

func (h *Handler) Borrowings(c echo.Context) error {
	filter, err := view.ParseBorrowingFilter(c.QueryParam("filter"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.page.setFilter(filter)
	h.ctrl.SelectTab(view.TabBorrowings)
	return h.respond(c, h.ctrl.LoadBorrowings(c.Request().Context(), filter))
}

func (h *Handler) NewBorrowing(c echo.Context) error {
	h.ctrl.ShowBorrowBookModal(c.Request().Context())
	return h.respond(c, nil)
}

func (h *Handler) CreateBorrowing(c echo.Context) error {
	var form view.BorrowForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	h.page.keepBorrowForm(form)
	return h.respond(c, h.ctrl.HandleBorrowBook(c.Request().Context(), form))
}

func (h *Handler) ReturnBorrowing(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return h.respond(c, h.ctrl.ReturnBook(c.Request().Context(), id, h.confirm(c)))
}

func (h *Handler) CloseModal(c echo.Context) error {
	modal, err := view.ParseModal(c.Param("modal"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.ctrl.CloseModal(modal)
	return h.respond(c, nil)
}

// confirm approves when the request carries confirm=yes. Otherwise it leaves
// a prompt on the page that re-posts the same action with confirm=yes.
func (h *Handler) confirm(c echo.Context) view.Confirm {
	return func(message string) bool {
		if c.FormValue("confirm") == "yes" {
			return true
		}
		h.page.setPrompt(Prompt{Message: message, Action: c.Request().URL.Path})
		return false
	}
}

// respond renders the whole page. The controller has already put any failure
// on the page as an alert, so err is only logged.
func (h *Handler) respond(c echo.Context, err error) error {
	if err != nil && !errors.Is(err, errs.ErrDeclined) {
		h.log.Debug("page action", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Render(http.StatusOK, pageTemplate, h.page.Snapshot())
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

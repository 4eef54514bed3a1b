package handler

import (
	"html/template"
	"sync"

	"github.com/Astemirdum/library-console/console/internal/view"
)

// Prompt asks the user to re-post Action with confirm=yes.
type Prompt struct {
	Message string
	Action  string
}

// Page is the server-side state of the console page. It implements view.View.
// Alert and Prompt are shown once and cleared by Snapshot.
// The console is single-user: every browser shares one Page.
type Page struct {
	mu sync.Mutex

	tab     view.Tab
	regions map[view.Region]template.HTML
	options map[view.Select][]view.Option
	modal   view.Modal

	filter view.BorrowingFilter
	query  string
	genre  string

	bookForm   view.BookForm
	authorForm view.AuthorForm
	borrowForm view.BorrowForm

	alert  *view.Alert
	prompt *Prompt
}

var _ view.View = (*Page)(nil)

func NewPage() *Page {
	return &Page{
		tab:     view.TabBooks,
		regions: make(map[view.Region]template.HTML),
		options: make(map[view.Select][]view.Option),
		filter:  view.FilterAll,
	}
}

// Reset returns the page to its freshly loaded state. Rendered regions are
// kept until the next load replaces them.
func (p *Page) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tab = view.TabBooks
	p.options = make(map[view.Select][]view.Option)
	p.modal = view.ModalNone
	p.filter = view.FilterAll
	p.query, p.genre = "", ""
	p.bookForm = view.BookForm{}
	p.authorForm = view.AuthorForm{}
	p.borrowForm = view.BorrowForm{}
	p.alert, p.prompt = nil, nil
}

func (p *Page) Render(region view.Region, markup template.HTML) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.regions[region] = markup
}

func (p *Page) SetOptions(sel view.Select, opts []view.Option) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.options[sel] = opts
}

func (p *Page) ActivateTab(tab view.Tab) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tab = tab
}

// ShowModal opens modal. Only one modal is open at a time.
func (p *Page) ShowModal(modal view.Modal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modal = modal
}

func (p *Page) CloseModal(modal view.Modal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.modal == modal {
		p.modal = view.ModalNone
	}
}

func (p *Page) ResetForm(modal view.Modal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch modal {
	case view.ModalAddBook:
		p.bookForm = view.BookForm{}
	case view.ModalAddAuthor:
		p.authorForm = view.AuthorForm{}
	case view.ModalBorrowBook:
		p.borrowForm = view.BorrowForm{}
	}
}

func (p *Page) Alert(alert view.Alert) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alert = &alert
}

func (p *Page) setPrompt(prompt Prompt) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompt = &prompt
}

func (p *Page) setFilter(filter view.BorrowingFilter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter = filter
}

func (p *Page) setSearch(query, genre string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query, p.genre = query, genre
}

// The submitted values stay in the form until a successful submit resets it.

func (p *Page) keepBookForm(form view.BookForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bookForm = form
}

func (p *Page) keepAuthorForm(form view.AuthorForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.authorForm = form
}

func (p *Page) keepBorrowForm(form view.BorrowForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.borrowForm = form
}

type TabState struct {
	Name   string
	Title  string
	Region string
	Active bool
	Markup template.HTML
}

type FilterState struct {
	Value    string
	Selected bool
}

// Snapshot is everything the page template needs for one response.
type Snapshot struct {
	Tabs    []TabState
	Filters []FilterState
	Query   string
	Genre   string

	Modal         string
	AuthorOptions []view.Option
	BookOptions   []view.Option
	BookForm      view.BookForm
	AuthorForm    view.AuthorForm
	BorrowForm    view.BorrowForm

	Alert       string
	AlertFailed bool
	Prompt      *Prompt
}

// Snapshot copies the page state and clears the one-shot alert and prompt.
func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Snapshot{
		Query:         p.query,
		Genre:         p.genre,
		Modal:         p.modal.String(),
		AuthorOptions: append([]view.Option(nil), p.options[view.SelectBookAuthor]...),
		BookOptions:   append([]view.Option(nil), p.options[view.SelectBorrowBook]...),
		BookForm:      p.bookForm,
		AuthorForm:    p.authorForm,
		BorrowForm:    p.borrowForm,
		Prompt:        p.prompt,
	}
	if p.alert != nil {
		s.Alert = p.alert.String()
		s.AlertFailed = p.alert.Kind == view.AlertError
	}
	for _, t := range view.Tabs() {
		s.Tabs = append(s.Tabs, TabState{
			Name:   t.String(),
			Title:  t.Title(),
			Region: t.Region().String(),
			Active: t == p.tab,
			Markup: p.regions[t.Region()],
		})
	}
	for _, f := range view.BorrowingFilters() {
		s.Filters = append(s.Filters, FilterState{Value: string(f), Selected: f == p.filter})
	}

	p.alert, p.prompt = nil, nil
	return s
}

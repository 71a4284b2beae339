package listview

import (
	"sync"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
)

// View is what the user table renders.
type View struct {
	Page
	Query   string
	Loading bool
	Err     string
}

// Controller keeps a query and page over a store and re-derives them after
// every store change, both loads and updates. The query survives a refresh;
// the page is clamped when the refreshed result has fewer pages.
type Controller struct {
	store ports.UserStore

	mu       sync.Mutex
	query    string
	page     int
	pageSize int
	filtered []domain.User

	unsubscribe func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithQuery sets the initial search query.
func WithQuery(q string) Option {
	return func(c *Controller) { c.query = q }
}

// WithPage sets the initial page and page size.
func WithPage(page, pageSize int) Option {
	return func(c *Controller) {
		c.page = page
		c.pageSize = pageSize
	}
}

// NewController subscribes to the store and derives the initial view from
// its current snapshot. Call Close to unsubscribe.
//
// Change events may reach subscribers out of order when loads overlap, so
// every event re-reads the store instead of trusting the state it carries.
func NewController(store ports.UserStore, opts ...Option) *Controller {
	c := &Controller{store: store, page: 1, pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(c)
	}
	if c.page < 1 {
		c.page = 1
	}
	if c.pageSize < 1 {
		c.pageSize = DefaultPageSize
	}

	c.unsubscribe = store.Subscribe(func(ports.UserStoreState) {
		c.refresh()
	})
	c.refresh()
	return c
}

// Search applies a new query and returns to the first page.
func (c *Controller) Search(query string) View {
	users := c.store.Snapshot().Users

	c.mu.Lock()
	c.query = query
	c.page = 1
	c.filtered = Filter(users, query)
	c.mu.Unlock()

	return c.View()
}

// SetPage moves to page, clamped to the available pages.
func (c *Controller) SetPage(page int) View {
	c.mu.Lock()
	c.page = page
	c.clampLocked()
	c.mu.Unlock()
	return c.View()
}

// View returns the current window together with the store's status.
func (c *Controller) View() View {
	st := c.store.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Page:    Paginate(c.filtered, c.page, c.pageSize),
		Query:   c.query,
		Loading: st.Loading,
		Err:     st.Err,
	}
}

// Query returns the active search query.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Close stops following the store.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

func (c *Controller) refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filtered = Filter(c.store.Snapshot().Users, c.query)
	c.clampLocked()
}

func (c *Controller) clampLocked() {
	pages := (len(c.filtered) + c.pageSize - 1) / c.pageSize
	if c.page > pages {
		c.page = pages
	}
	if c.page < 1 {
		c.page = 1
	}
}

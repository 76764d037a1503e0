package feed

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mkravets/newsline/internal/api"
)

// Kind selects the input domain of a controller: free-text topic
// search or a fixed headline category. The state machine is identical;
// only the default query and the error wording differ.
type Kind int

const (
	KindTopic Kind = iota
	KindCategory
)

// Request tags one issued fetch. The monotonic ID is how stale
// responses are told apart from current ones: only the highest id ever
// issued may commit.
type Request struct {
	ID       uint64
	Query    string
	Page     int
	PageSize int
}

// Controller owns one paginated feed: its query, current page, items,
// and pagination metadata. It never performs network calls itself; the
// caller issues the request described by Begin/SetQuery/SetPage and
// hands the outcome back to Resolve.
type Controller struct {
	kind     Kind
	pageSize int

	query      string
	page       int
	items      []api.Article
	totalPages int
	total      int
	loading    bool
	errMsg     string

	lastReq uint64
}

func NewController(kind Kind, initialQuery string, pageSize int) *Controller {
	return &Controller{
		kind:       kind,
		pageSize:   pageSize,
		query:      initialQuery,
		page:       1,
		totalPages: 1,
	}
}

// SetQuery starts a fetch for page 1 of the given query. An empty
// query after trimming sets a local validation error and issues
// nothing.
func (c *Controller) SetQuery(query string) (Request, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.errMsg = "Please enter a topic to search"
		return Request{}, false
	}
	return c.begin(trimmed, 1), true
}

// SetPage starts a fetch for another page of the current query. Out of
// range or current-page requests are no-ops.
func (c *Controller) SetPage(n int) (Request, bool) {
	if n == c.page || n < 1 || n > c.totalPages {
		return Request{}, false
	}
	return c.begin(c.query, n), true
}

// Reload re-fetches the current (query, page); used when the view
// mounts.
func (c *Controller) Reload() (Request, bool) {
	return c.SetQueryAndPage(c.query, c.page)
}

// SetQueryAndPage starts a fetch for an explicit (query, page) pair.
func (c *Controller) SetQueryAndPage(query string, page int) (Request, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.errMsg = "Please enter a topic to search"
		return Request{}, false
	}
	if page < 1 {
		page = 1
	}
	return c.begin(trimmed, page), true
}

func (c *Controller) begin(query string, page int) Request {
	c.lastReq++
	c.query = query
	c.page = page
	c.loading = true
	c.errMsg = ""
	return Request{ID: c.lastReq, Query: query, Page: page, PageSize: c.pageSize}
}

// Resolve commits a finished fetch. A result for a superseded request
// is discarded and Resolve reports false; the state set by the newer
// request stays untouched regardless of network completion order.
func (c *Controller) Resolve(req Request, page *api.FeedPage, err error) bool {
	if req.ID != c.lastReq {
		return false
	}
	c.loading = false

	if err == nil && page == nil {
		err = api.ErrInvalidResponse
	}
	if err != nil {
		c.errMsg = c.errorMessage(req.Query, err)
		c.items = nil
		c.totalPages = 1
		c.total = 0
		return true
	}

	c.items = page.Articles
	c.page = req.Page
	if page.Page > 0 {
		c.page = page.Page
	}
	c.totalPages = 1
	if page.TotalPages > 0 {
		c.totalPages = page.TotalPages
	}
	c.total = 0
	if page.Total > 0 {
		c.total = page.Total
	}
	c.errMsg = ""
	return true
}

func (c *Controller) errorMessage(query string, err error) string {
	switch api.StatusOf(err) {
	case http.StatusNotFound:
		if c.kind == KindCategory {
			return fmt.Sprintf("No headlines found for %s. Try another category.", query)
		}
		return "No articles found for this topic. Try a different search term."
	case http.StatusInternalServerError:
		return "Server error. Please try again later."
	}
	if errors.Is(err, api.ErrInvalidResponse) {
		return "Invalid response from server."
	}
	if detail := api.DetailOf(err); detail != "" {
		return detail
	}
	if c.kind == KindCategory {
		return "Unable to load headlines right now. Please try again."
	}
	return "Unable to load news right now. Please try again."
}

func (c *Controller) Query() string         { return c.query }
func (c *Controller) Page() int             { return c.page }
func (c *Controller) TotalPages() int       { return c.totalPages }
func (c *Controller) Total() int            { return c.total }
func (c *Controller) Items() []api.Article  { return c.items }
func (c *Controller) Loading() bool         { return c.loading }
func (c *Controller) Err() string           { return c.errMsg }
func (c *Controller) PageSize() int         { return c.pageSize }

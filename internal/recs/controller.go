package recs

import (
	"github.com/mkravets/newsline/internal/api"
	"github.com/mkravets/newsline/internal/session"
)

// Request tags one issued recommendation fetch; stale results are
// discarded the same way the feed controllers do it.
type Request struct {
	ID     uint64
	UserID string
}

// Controller holds the blended recommendation feed for the current
// identity. No pagination; refresh re-fetches the whole thing.
type Controller struct {
	session *session.Store

	set     *api.RecommendationSet
	loading bool
	errMsg  string

	lastReq uint64
}

func NewController(sess *session.Store) *Controller {
	return &Controller{session: sess}
}

// Begin starts a fetch for the resolved identity. Callable any time;
// concurrent refreshes are not serialized, the stale check sorts them
// out.
func (c *Controller) Begin() Request {
	c.lastReq++
	c.loading = true
	c.errMsg = ""
	return Request{ID: c.lastReq, UserID: c.session.UserID()}
}

// Resolve commits a finished fetch unless a newer one was issued.
func (c *Controller) Resolve(req Request, set *api.RecommendationSet, err error) bool {
	if req.ID != c.lastReq {
		return false
	}
	c.loading = false
	if err != nil {
		if d := api.DetailOf(err); d != "" {
			c.errMsg = d
		} else {
			c.errMsg = "Unable to load recommendations right now."
		}
		return true
	}
	c.set = set
	c.errMsg = ""
	return true
}

func (c *Controller) Loading() bool { return c.loading }
func (c *Controller) Err() string   { return c.errMsg }
func (c *Controller) Loaded() bool  { return c.set != nil }

func (c *Controller) Items() []api.Recommendation {
	if c.set == nil {
		return nil
	}
	return c.set.Items
}

func (c *Controller) Source() string {
	if c.set == nil {
		return ""
	}
	return c.set.Source
}

func (c *Controller) ColdStart() bool { return c.set.ColdStart() }

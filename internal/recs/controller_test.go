package recs

import (
	"path/filepath"
	"testing"

	"github.com/mkravets/newsline/internal/api"
	"github.com/mkravets/newsline/internal/session"
)

func newTestController(t *testing.T) (*Controller, *session.Store) {
	t.Helper()
	sess := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return NewController(sess), sess
}

func TestBeginResolvesIdentity(t *testing.T) {
	c, sess := newTestController(t)

	req := c.Begin()
	if req.UserID != session.GuestUserID {
		t.Errorf("user = %q, want guest fallback", req.UserID)
	}
	if !c.Loading() {
		t.Error("expected loading state")
	}

	if err := sess.SetIdentity(&api.Identity{UserID: "alice"}); err != nil {
		t.Fatal(err)
	}
	if req := c.Begin(); req.UserID != "alice" {
		t.Errorf("user = %q, want live identity", req.UserID)
	}
}

func TestResolveCommit(t *testing.T) {
	c, _ := newTestController(t)
	req := c.Begin()

	set := &api.RecommendationSet{
		Source: "personalized",
		Items:  []api.Recommendation{{Article: api.Article{Title: "A", URL: "http://a"}, Score: 0.8}},
	}
	if !c.Resolve(req, set, nil) {
		t.Fatal("expected commit")
	}
	if c.Loading() || !c.Loaded() {
		t.Error("expected loaded state")
	}
	if len(c.Items()) != 1 || c.Source() != "personalized" || c.ColdStart() {
		t.Errorf("state = %+v %q", c.Items(), c.Source())
	}
}

func TestColdStart(t *testing.T) {
	c, _ := newTestController(t)
	if c.ColdStart() {
		t.Error("unloaded controller should not report cold start")
	}

	req := c.Begin()
	c.Resolve(req, &api.RecommendationSet{Source: "cold_start"}, nil)
	if !c.ColdStart() {
		t.Error("expected cold start")
	}
}

func TestStaleResolveDiscarded(t *testing.T) {
	c, _ := newTestController(t)

	first := c.Begin()
	second := c.Begin()

	newer := &api.RecommendationSet{Source: "personalized"}
	if !c.Resolve(second, newer, nil) {
		t.Fatal("newest request should commit")
	}
	older := &api.RecommendationSet{Source: "cold_start"}
	if c.Resolve(first, older, nil) {
		t.Fatal("superseded request should be discarded")
	}
	if c.Source() != "personalized" {
		t.Errorf("source = %q", c.Source())
	}
}

func TestResolveError(t *testing.T) {
	c, _ := newTestController(t)

	req := c.Begin()
	c.Resolve(req, nil, &api.Error{StatusCode: 503, Detail: "Model retraining"})
	if c.Err() != "Model retraining" {
		t.Errorf("err = %q, want backend detail", c.Err())
	}

	req = c.Begin()
	c.Resolve(req, nil, errPlain("dial tcp: connection refused"))
	if c.Err() != "Unable to load recommendations right now." {
		t.Errorf("err = %q", c.Err())
	}
}

type errPlain string

func (e errPlain) Error() string { return string(e) }

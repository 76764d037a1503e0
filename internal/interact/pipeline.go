package interact

import (
	"errors"
	"net/http"
	"time"

	"github.com/mkravets/newsline/internal/api"
	"github.com/mkravets/newsline/internal/session"
)

// Kind is the interaction vocabulary the backend scores on.
type Kind string

const (
	View    Kind = "view"
	Read    Kind = "read"
	Like    Kind = "like"
	Save    Kind = "save"
	Dislike Kind = "dislike"
)

// ErrMissingURL means the gesture referenced an article with no
// resolvable URL. Nothing is sent; the pipeline records a local error.
var ErrMissingURL = errors.New("article URL is missing")

const (
	successTTL = 2 * time.Second
	errorTTL   = 3 * time.Second
	markerTTL  = 2 * time.Second
)

// StatusKind tags the pipeline's user-facing feedback state.
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusSuccess
	StatusError
)

// Clock exists so tests can drive expiry without waiting.
type Clock func() time.Time

// Request is a raw user gesture before normalization.
type Request struct {
	Article  api.Article
	Topic    string
	Kind     Kind
	Keywords []string
}

type marker struct {
	kind      Kind
	expiresAt time.Time
}

// Pipeline turns gestures into canonical interaction events and keeps
// the optimistic feedback state around each send. Expiry is a
// timestamp checked on read, not a timer: a tick that fires after the
// state was superseded simply sees nothing to clear.
//
// Not safe for concurrent use; the TUI drives it from its update loop.
type Pipeline struct {
	session *session.Store
	now     Clock

	pending   int
	status    StatusKind
	message   string
	expiresAt time.Time
	markers   map[string]marker
}

type Option func(*Pipeline)

// WithClock replaces the wall clock, for tests.
func WithClock(now Clock) Option {
	return func(p *Pipeline) { p.now = now }
}

func New(sess *session.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		session: sess,
		now:     time.Now,
		markers: make(map[string]marker),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Begin validates and normalizes a gesture into the canonical event,
// records the in-flight and optimistic marker state, and returns the
// payload for the caller to send. Keyword precedence: caller-supplied
// list, then the article's own, then ["news"]. Identity: live session,
// then the cached user id, then the guest sentinel.
func (p *Pipeline) Begin(req Request) (api.Interaction, error) {
	if req.Article.URL == "" {
		p.status = StatusError
		p.message = "Article URL is missing"
		p.expiresAt = p.now().Add(errorTTL)
		return api.Interaction{}, ErrMissingURL
	}

	kind := req.Kind
	if kind == "" {
		kind = View
	}
	topic := req.Topic
	if topic == "" {
		topic = req.Article.Topic
	}
	if topic == "" {
		topic = "general"
	}
	keywords := req.Keywords
	if len(keywords) == 0 {
		keywords = req.Article.Keywords
	}
	if len(keywords) == 0 {
		keywords = []string{"news"}
	}

	ev := api.Interaction{
		UserID:          p.session.UserID(),
		ArticleID:       req.Article.Key(),
		Topic:           topic,
		Keywords:        keywords,
		InteractionType: string(kind),
	}

	p.pending++
	p.status = StatusIdle
	p.message = ""
	p.markers[ev.ArticleID] = marker{kind: kind, expiresAt: p.now().Add(markerTTL)}
	return ev, nil
}

// Resolve records the outcome of a send. The error stays the caller's
// to act on: a chained action (open after track) proceeds regardless.
func (p *Pipeline) Resolve(ev api.Interaction, err error) {
	if p.pending > 0 {
		p.pending--
	}
	if err == nil {
		p.status = StatusSuccess
		p.message = actionLabel(Kind(ev.InteractionType)) + " successfully!"
		p.expiresAt = p.now().Add(successTTL)
		p.markers[ev.ArticleID] = marker{kind: Kind(ev.InteractionType), expiresAt: p.now().Add(markerTTL)}
		return
	}
	p.status = StatusError
	p.message = errorMessage(err)
	p.expiresAt = p.now().Add(errorTTL)
}

// InFlight reports whether any send is outstanding. Coarse on purpose:
// it only disables further interaction controls, never navigation.
func (p *Pipeline) InFlight() bool {
	return p.pending > 0
}

// Feedback returns the current success or error message, expiring it
// on read.
func (p *Pipeline) Feedback() (StatusKind, string) {
	if p.status == StatusIdle || p.now().After(p.expiresAt) {
		return StatusIdle, ""
	}
	return p.status, p.message
}

// Marker returns the optimistic marker for an article key, if one is
// still live. A new gesture on the same article overwrites the old
// marker, so at most one is visible per item.
func (p *Pipeline) Marker(articleKey string) (Kind, bool) {
	m, ok := p.markers[articleKey]
	if !ok {
		return "", false
	}
	if p.now().After(m.expiresAt) {
		delete(p.markers, articleKey)
		return "", false
	}
	return m.kind, true
}

// Active reports whether any transient state (in-flight send, live
// feedback, live marker) still needs repainting.
func (p *Pipeline) Active() bool {
	if p.pending > 0 {
		return true
	}
	if k, _ := p.Feedback(); k != StatusIdle {
		return true
	}
	now := p.now()
	for _, m := range p.markers {
		if !now.After(m.expiresAt) {
			return true
		}
	}
	return false
}

func actionLabel(k Kind) string {
	switch k {
	case Read:
		return "Read"
	case Like:
		return "Liked"
	case Save:
		return "Saved"
	case Dislike:
		return "Disliked"
	case View:
		return "Viewed"
	default:
		return "Recorded"
	}
}

// errorMessage probes the failure in the order the UI cares about:
// known statuses, the backend's detail field, the transport error's
// own text, then a generic fallback.
func errorMessage(err error) string {
	switch api.StatusOf(err) {
	case http.StatusNotFound:
		return "Interaction endpoint not found. Please check if the backend is running."
	case http.StatusBadRequest:
		if d := api.DetailOf(err); d != "" {
			return d
		}
		return "Invalid interaction data."
	}
	if d := api.DetailOf(err); d != "" {
		return d
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return "We couldn't record your interaction, but you can keep browsing."
}

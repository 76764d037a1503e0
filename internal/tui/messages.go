package tui

import (
	"time"

	"github.com/mkravets/newsline/internal/api"
	"github.com/mkravets/newsline/internal/feed"
	"github.com/mkravets/newsline/internal/recs"
)

type feedKind int

const (
	topicFeedKind feedKind = iota
	headlineFeedKind
)

type authResultMsg struct {
	identity *api.Identity
	err      error
	signup   bool
}

type feedResolvedMsg struct {
	which feedKind
	req   feed.Request
	page  *api.FeedPage
	err   error
}

type recsResolvedMsg struct {
	req recs.Request
	set *api.RecommendationSet
	err error
}

type interactionResolvedMsg struct {
	ev      api.Interaction
	err     error
	openURL string // non-empty: open after the send, success or not
}

type savedResolvedMsg struct {
	req      uint64
	articles []api.Article
	err      error
}

type adminSnapshot struct {
	users        []map[string]any
	interactions []map[string]any
	profiles     []map[string]any
	cacheKeys    []string
}

type adminResolvedMsg struct {
	snapshot adminSnapshot
	err      error
}

type browserOpenedMsg struct {
	err error
}

// tickMsg repaints while transient feedback state is live so expired
// messages and markers disappear without user input.
type tickMsg time.Time

package tui

// view enumerates every screen the app can show.
type view int

const (
	viewLogin view = iota
	viewSignup
	viewTopics
	viewHeadlines
	viewRecs
	viewSaved
	viewProfile
	viewArticle
	viewAdmin
)

// protectedViews require an authenticated session; everything else is
// public.
var protectedViews = map[view]bool{
	viewTopics:    true,
	viewHeadlines: true,
	viewRecs:      true,
	viewSaved:     true,
	viewProfile:   true,
	viewArticle:   true,
	viewAdmin:     true,
}

// gate redirects a protected view to the login screen when nobody is
// signed in. Pure function of the session; callers re-evaluate it on
// every update and render, so a logout while a protected view is up
// redirects on the next frame.
func (a *App) gate(v view) view {
	if protectedViews[v] && !a.session.IsAuthenticated() {
		return viewLogin
	}
	return v
}

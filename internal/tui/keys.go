package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkravets/newsline/internal/api"
	"github.com/mkravets/newsline/internal/interact"
)

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.current {
	case viewLogin:
		return a.handleLoginKey(msg)
	case viewSignup:
		return a.handleSignupKey(msg)
	case viewArticle:
		return a.handleArticleKey(msg)
	}

	if a.searching {
		return a.handleSearchKey(msg)
	}
	return a.handleBrowseKey(msg)
}

// ---- auth forms ----

func (a *App) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return a, a.focusForm(a.loginInputs, a.formFocus+1)
	case "shift+tab", "up":
		return a, a.focusForm(a.loginInputs, a.formFocus-1)
	case "enter":
		if a.formFocus < len(a.loginInputs)-1 {
			return a, a.focusForm(a.loginInputs, a.formFocus+1)
		}
		if a.authBusy {
			return a, nil
		}
		return a, a.loginCmd()
	case "ctrl+n":
		a.current = viewSignup
		a.authErr = ""
		a.authNotice = ""
		return a, a.focusForm(a.signupInputs, 0)
	}

	var cmd tea.Cmd
	a.loginInputs[a.formFocus], cmd = a.loginInputs[a.formFocus].Update(msg)
	return a, cmd
}

func (a *App) handleSignupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.current = viewLogin
		a.authErr = ""
		return a, a.focusForm(a.loginInputs, 0)
	case "tab", "down":
		return a, a.focusForm(a.signupInputs, a.formFocus+1)
	case "shift+tab", "up":
		return a, a.focusForm(a.signupInputs, a.formFocus-1)
	case "enter":
		if a.formFocus < len(a.signupInputs)-1 {
			return a, a.focusForm(a.signupInputs, a.formFocus+1)
		}
		if a.authBusy {
			return a, nil
		}
		return a, a.signupCmd()
	}

	var cmd tea.Cmd
	a.signupInputs[a.formFocus], cmd = a.signupInputs[a.formFocus].Update(msg)
	return a, cmd
}

// focusForm moves focus within a form, wrapping at either end.
func (a *App) focusForm(inputs []textinput.Model, idx int) tea.Cmd {
	n := len(inputs)
	a.formFocus = ((idx % n) + n) % n
	for i := range inputs {
		if i == a.formFocus {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
	return textinput.Blink
}

// ---- topic search ----

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.searching = false
		a.searchInput.Blur()
		return a, nil
	case "enter":
		a.searching = false
		a.searchInput.Blur()
		req, ok := a.topicFeed.SetQuery(a.searchInput.Value())
		if !ok {
			return a, nil
		}
		a.cursor = 0
		return a, tea.Batch(a.fetchFeedCmd(topicFeedKind, req), a.spinner.Tick)
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

// ---- article detail ----

func (a *App) handleArticleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.detail == nil {
		a.current = a.detailReturn
		return a, nil
	}
	switch msg.String() {
	case "esc", "backspace":
		a.current = a.detailReturn
		a.detail = nil
		return a, nil
	case "q":
		return a, tea.Quit
	case "o", "enter":
		if a.pipeline.InFlight() {
			return a, nil
		}
		return a, a.trackCmd(*a.detail, interact.Read, true)
	case "L":
		return a, a.quickInteraction(*a.detail, interact.Like)
	case "S":
		return a, a.quickInteraction(*a.detail, interact.Save)
	case "X":
		return a, a.quickInteraction(*a.detail, interact.Dislike)
	}
	return a, nil
}

// ---- browse views ----

func (a *App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "1":
		return a, a.switchView(viewTopics)
	case "2":
		return a, a.switchView(viewHeadlines)
	case "3":
		return a, a.switchView(viewRecs)
	case "4":
		return a, a.switchView(viewSaved)
	case "5":
		return a, a.switchView(viewProfile)
	case "6":
		return a, a.switchView(viewAdmin)
	case "j", "down":
		if a.cursor < len(a.visibleArticles())-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "enter":
		if art, ok := a.selectedArticle(); ok {
			a.detail = &art
			a.detailReturn = a.current
			a.current = viewArticle
		}
		return a, nil
	case "o":
		if art, ok := a.selectedArticle(); ok && !a.pipeline.InFlight() {
			return a, a.trackCmd(art, interact.Read, true)
		}
		return a, nil
	case "L":
		if art, ok := a.selectedArticle(); ok {
			return a, a.quickInteraction(art, interact.Like)
		}
		return a, nil
	case "S":
		if art, ok := a.selectedArticle(); ok {
			return a, a.quickInteraction(art, interact.Save)
		}
		return a, nil
	case "X":
		if art, ok := a.selectedArticle(); ok {
			return a, a.quickInteraction(art, interact.Dislike)
		}
		return a, nil
	case "/":
		if a.current == viewTopics {
			a.searching = true
			a.searchInput.SetValue(a.topicFeed.Query())
			a.searchInput.Focus()
			return a, textinput.Blink
		}
		return a, nil
	case "tab", "shift+tab":
		back := msg.String() == "shift+tab"
		switch a.current {
		case viewHeadlines:
			return a, a.cycleCategory(back)
		case viewTopics:
			return a, a.cycleTopic(back)
		}
		return a, nil
	case "left", "p":
		return a, a.changePage(-1)
	case "right", "n":
		return a, a.changePage(1)
	case "r":
		return a, a.refreshCurrent()
	case "x":
		if a.current == viewProfile {
			if err := a.session.Logout(); err != nil {
				a.err = err
				return a, nil
			}
			a.client = a.newClient("")
			a.current = viewLogin
			a.authNotice = "Logged out."
			a.authErr = ""
			return a, a.focusForm(a.loginInputs, 0)
		}
		return a, nil
	}
	return a, nil
}

// cycleTopic steps through the configured quick-pick topics.
func (a *App) cycleTopic(back bool) tea.Cmd {
	if len(a.cfg.Topics) == 0 {
		return nil
	}
	step := 1
	if back {
		step = len(a.cfg.Topics) - 1
	}
	a.topicIdx = (a.topicIdx + step) % len(a.cfg.Topics)
	req, ok := a.topicFeed.SetQuery(a.cfg.Topics[a.topicIdx])
	if !ok {
		return nil
	}
	a.cursor = 0
	return tea.Batch(a.fetchFeedCmd(topicFeedKind, req), a.spinner.Tick)
}

func (a *App) cycleCategory(back bool) tea.Cmd {
	if len(a.cfg.Categories) == 0 {
		return nil
	}
	step := 1
	if back {
		step = len(a.cfg.Categories) - 1
	}
	a.categoryIdx = (a.categoryIdx + step) % len(a.cfg.Categories)
	req, ok := a.categoryFeed.SetQuery(a.cfg.Categories[a.categoryIdx])
	if !ok {
		return nil
	}
	a.cursor = 0
	return tea.Batch(a.fetchFeedCmd(headlineFeedKind, req), a.spinner.Tick)
}

// quickInteraction fires a like/save/dislike without navigation.
func (a *App) quickInteraction(art api.Article, kind interact.Kind) tea.Cmd {
	if a.pipeline.InFlight() {
		return nil
	}
	return a.trackCmd(art, kind, false)
}

func (a *App) changePage(delta int) tea.Cmd {
	switch a.current {
	case viewTopics:
		if req, ok := a.topicFeed.SetPage(a.topicFeed.Page() + delta); ok {
			a.cursor = 0
			return tea.Batch(a.fetchFeedCmd(topicFeedKind, req), a.spinner.Tick)
		}
	case viewHeadlines:
		if req, ok := a.categoryFeed.SetPage(a.categoryFeed.Page() + delta); ok {
			a.cursor = 0
			return tea.Batch(a.fetchFeedCmd(headlineFeedKind, req), a.spinner.Tick)
		}
	}
	return nil
}

func (a *App) refreshCurrent() tea.Cmd {
	switch a.current {
	case viewTopics:
		return a.reloadTopicsCmd()
	case viewHeadlines:
		if req, ok := a.categoryFeed.Reload(); ok {
			return tea.Batch(a.fetchFeedCmd(headlineFeedKind, req), a.spinner.Tick)
		}
	case viewRecs:
		return a.fetchRecsCmd()
	case viewSaved:
		return a.fetchSavedCmd()
	case viewAdmin:
		if a.cfg.AdminKey == "" {
			a.adminErr = "No admin key configured. Set NEWSLINE_ADMIN_KEY."
			return nil
		}
		return a.fetchAdminCmd()
	}
	return nil
}

// switchView navigates, running the gate and the view's mount fetch.
func (a *App) switchView(v view) tea.Cmd {
	v = a.gate(v)
	if v == a.current {
		return nil
	}
	a.current = v
	a.cursor = 0

	switch v {
	case viewTopics:
		if len(a.topicFeed.Items()) == 0 && !a.topicFeed.Loading() {
			return a.reloadTopicsCmd()
		}
	case viewHeadlines:
		if len(a.categoryFeed.Items()) == 0 && !a.categoryFeed.Loading() {
			if req, ok := a.categoryFeed.Reload(); ok {
				return tea.Batch(a.fetchFeedCmd(headlineFeedKind, req), a.spinner.Tick)
			}
		}
	case viewRecs:
		// Fetch once automatically on mount; r refreshes after that.
		if !a.recs.Loaded() && !a.recs.Loading() {
			return a.fetchRecsCmd()
		}
	case viewSaved:
		return a.fetchSavedCmd()
	case viewAdmin:
		if !a.adminLoaded && !a.adminLoading {
			if a.cfg.AdminKey == "" {
				a.adminErr = "No admin key configured. Set NEWSLINE_ADMIN_KEY."
				return nil
			}
			return a.fetchAdminCmd()
		}
	}
	return nil
}

func (a *App) visibleArticles() []api.Article {
	switch a.current {
	case viewTopics:
		return a.topicFeed.Items()
	case viewHeadlines:
		return a.categoryFeed.Items()
	case viewRecs:
		items := a.recs.Items()
		out := make([]api.Article, len(items))
		for i, r := range items {
			out[i] = r.Article
		}
		return out
	case viewSaved:
		return a.savedArticles
	}
	return nil
}

func (a *App) selectedArticle() (api.Article, bool) {
	items := a.visibleArticles()
	if len(items) == 0 || a.cursor >= len(items) {
		return api.Article{}, false
	}
	return items[a.cursor], true
}

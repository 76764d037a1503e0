package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkravets/newsline/internal/api"
	"github.com/mkravets/newsline/internal/browser"
	"github.com/mkravets/newsline/internal/cache"
	"github.com/mkravets/newsline/internal/config"
	"github.com/mkravets/newsline/internal/feed"
	"github.com/mkravets/newsline/internal/interact"
	"github.com/mkravets/newsline/internal/recs"
	"github.com/mkravets/newsline/internal/session"
)

const feedbackTickInterval = 250 * time.Millisecond

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg     *config.Config
	Session *session.Store
	History *cache.History // optional; nil disables local history

	// NewClient builds an API client carrying the given bearer token.
	// Re-invoked after login/logout so the token follows the session.
	NewClient func(token string) *api.Client
}

type App struct {
	cfg       *config.Config
	session   *session.Store
	history   *cache.History
	newClient func(token string) *api.Client
	client    *api.Client

	pipeline     *interact.Pipeline
	topicFeed    *feed.Controller
	categoryFeed *feed.Controller
	recs         *recs.Controller

	current view
	width   int
	height  int

	// Auth forms
	loginInputs  []textinput.Model
	signupInputs []textinput.Model
	formFocus    int
	authBusy     bool
	authErr      string
	authNotice   string

	// Topic search
	searchInput textinput.Model
	searching   bool

	cursor      int
	topicIdx    int
	categoryIdx int

	// Saved articles
	savedArticles []api.Article
	savedLoading  bool
	savedErr      string
	savedReq      uint64

	// Admin snapshot
	admin        adminSnapshot
	adminLoaded  bool
	adminLoading bool
	adminErr     string

	// Article detail
	detail       *api.Article
	detailReturn view

	spinner     spinner.Model
	ticking     bool
	currentDate string
	err         error
}

func NewApp(opts RunOpts) *App {
	user := textinput.New()
	user.Placeholder = "user id"
	user.CharLimit = 64
	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.CharLimit = 64

	suUser := textinput.New()
	suUser.Placeholder = "user id"
	suUser.CharLimit = 64
	suEmail := textinput.New()
	suEmail.Placeholder = "email"
	suEmail.CharLimit = 128
	suPass := textinput.New()
	suPass.Placeholder = "password"
	suPass.EchoMode = textinput.EchoPassword
	suPass.CharLimit = 64
	suName := textinput.New()
	suName.Placeholder = "display name (optional)"
	suName.CharLimit = 64

	search := textinput.New()
	search.Placeholder = "Search a topic..."
	search.Prompt = formTitleStyle.Render("/ ")
	search.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	a := &App{
		cfg:          opts.Cfg,
		session:      opts.Session,
		history:      opts.History,
		newClient:    opts.NewClient,
		pipeline:     interact.New(opts.Session),
		topicFeed:    feed.NewController(feed.KindTopic, opts.Cfg.DefaultTopic, opts.Cfg.GetPageSize()),
		categoryFeed: feed.NewController(feed.KindCategory, opts.Cfg.DefaultCategory, opts.Cfg.GetPageSize()),
		recs:         recs.NewController(opts.Session),
		loginInputs:  []textinput.Model{user, pass},
		signupInputs: []textinput.Model{suUser, suEmail, suPass, suName},
		searchInput:  search,
		spinner:      sp,
		currentDate:  time.Now().Format("Jan 2"),
	}
	a.client = a.newClient(a.session.AccessToken())

	for i, c := range a.cfg.Categories {
		if c == a.cfg.DefaultCategory {
			a.categoryIdx = i
			break
		}
	}
	for i, tp := range a.cfg.Topics {
		if tp == a.cfg.DefaultTopic {
			a.topicIdx = i
			break
		}
	}

	a.current = viewLogin
	if a.session.IsAuthenticated() {
		a.current = viewTopics
	}
	return a
}

func (a *App) Init() tea.Cmd {
	a.loginInputs[0].Focus()
	if a.current == viewTopics {
		return a.reloadTopicsCmd()
	}
	return textinput.Blink
}

// ---- commands ----

func (a *App) reloadTopicsCmd() tea.Cmd {
	req, ok := a.topicFeed.Reload()
	if !ok {
		return nil
	}
	return tea.Batch(a.fetchFeedCmd(topicFeedKind, req), a.spinner.Tick)
}

func (a *App) fetchFeedCmd(which feedKind, req feed.Request) tea.Cmd {
	client := a.client
	timeout := a.cfg.TimeoutDuration()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		var (
			page *api.FeedPage
			err  error
		)
		if which == topicFeedKind {
			page, err = client.NewsByTopic(ctx, req.Query, req.Page, req.PageSize)
		} else {
			page, err = client.HeadlinesByCategory(ctx, req.Query, req.Page, req.PageSize)
		}
		return feedResolvedMsg{which: which, req: req, page: page, err: err}
	}
}

func (a *App) fetchRecsCmd() tea.Cmd {
	req := a.recs.Begin()
	client := a.client
	timeout := a.cfg.TimeoutDuration()
	return tea.Batch(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		set, err := client.Recommendations(ctx, req.UserID)
		return recsResolvedMsg{req: req, set: set, err: err}
	}, a.spinner.Tick)
}

func (a *App) fetchSavedCmd() tea.Cmd {
	a.savedReq++
	a.savedLoading = true
	a.savedErr = ""
	req := a.savedReq
	userID := a.session.UserID()
	client := a.client
	timeout := a.cfg.TimeoutDuration()
	return tea.Batch(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		articles, err := client.SavedArticles(ctx, userID)
		return savedResolvedMsg{req: req, articles: articles, err: err}
	}, a.spinner.Tick)
}

func (a *App) fetchAdminCmd() tea.Cmd {
	a.adminLoading = true
	a.adminErr = ""
	key := a.cfg.AdminKey
	client := a.client
	timeout := a.cfg.TimeoutDuration()
	return tea.Batch(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		var (
			snap adminSnapshot
			err  error
		)
		if snap.users, err = client.AdminUsers(ctx, key); err != nil {
			return adminResolvedMsg{err: err}
		}
		if snap.interactions, err = client.AdminInteractions(ctx, key); err != nil {
			return adminResolvedMsg{err: err}
		}
		if snap.profiles, err = client.AdminProfiles(ctx, key); err != nil {
			return adminResolvedMsg{err: err}
		}
		if snap.cacheKeys, err = client.AdminCacheKeys(ctx, key); err != nil {
			return adminResolvedMsg{err: err}
		}
		return adminResolvedMsg{snapshot: snap}
	}, a.spinner.Tick)
}

func (a *App) loginCmd() tea.Cmd {
	userID := a.loginInputs[0].Value()
	password := a.loginInputs[1].Value()
	if userID == "" || password == "" {
		a.authErr = "Please enter both user ID and password."
		return nil
	}
	a.authBusy = true
	a.authErr = ""
	client := a.client
	timeout := a.cfg.TimeoutDuration()
	return tea.Batch(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		id, err := client.Login(ctx, userID, password)
		return authResultMsg{identity: id, err: err}
	}, a.spinner.Tick)
}

func (a *App) signupCmd() tea.Cmd {
	req := api.RegisterRequest{
		UserID:   a.signupInputs[0].Value(),
		Email:    a.signupInputs[1].Value(),
		Password: a.signupInputs[2].Value(),
		Name:     a.signupInputs[3].Value(),
	}
	if req.UserID == "" || req.Email == "" || req.Password == "" {
		a.authErr = "User ID, email and password are required."
		return nil
	}
	a.authBusy = true
	a.authErr = ""
	client := a.client
	timeout := a.cfg.TimeoutDuration()
	return tea.Batch(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := client.Register(ctx, req)
		return authResultMsg{err: err, signup: true}
	}, a.spinner.Tick)
}

// trackCmd normalizes a gesture through the pipeline and issues the
// send. With openAfter set, the article opens in the browser once the
// send settles, whether or not it succeeded.
func (a *App) trackCmd(article api.Article, kind interact.Kind, openAfter bool) tea.Cmd {
	ev, err := a.pipeline.Begin(interact.Request{Article: article, Kind: kind})
	if err != nil {
		// Local validation failure: nothing was sent, but a chained
		// open still proceeds when a URL exists.
		if openAfter && article.URL != "" {
			return tea.Batch(openBrowserCmd(article.URL), a.feedbackTick())
		}
		return a.feedbackTick()
	}

	openURL := ""
	if openAfter {
		openURL = article.URL
	}
	client := a.client
	timeout := a.cfg.TimeoutDuration()
	send := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		sendErr := client.SendInteraction(ctx, ev)
		return interactionResolvedMsg{ev: ev, err: sendErr, openURL: openURL}
	}
	return tea.Batch(send, a.feedbackTick())
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg{err: browser.Open(url)}
	}
}

func (a *App) recordSeenCmd(articles []api.Article, topic string) tea.Cmd {
	if a.history == nil || len(articles) == 0 {
		return nil
	}
	h := a.history
	return func() tea.Msg {
		h.RecordSeen(articles, topic)
		return nil
	}
}

func (a *App) recordActionCmd(key, kind string) tea.Cmd {
	if a.history == nil {
		return nil
	}
	h := a.history
	return func() tea.Msg {
		h.RecordAction(key, kind)
		return nil
	}
}

// feedbackTick schedules repaints while feedback messages or markers
// are live, so expiry shows up without a keypress.
func (a *App) feedbackTick() tea.Cmd {
	if a.ticking {
		return nil
	}
	a.ticking = true
	return tea.Tick(feedbackTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ---- update ----

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The gate runs on every update: a logout mid-session bounces the
	// next frame back to login.
	a.current = a.gate(a.current)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.err = nil
		return a.handleKey(msg)

	case authResultMsg:
		a.authBusy = false
		if msg.err != nil {
			if msg.signup {
				a.authErr = authErrorMessage(msg.err, "Signup failed. Please try again.")
			} else {
				a.authErr = authErrorMessage(msg.err, "Login failed. Please try again.")
			}
			return a, nil
		}
		if msg.signup {
			// Account created; sign in with the new credentials.
			a.current = viewLogin
			a.authNotice = "Account created. Please sign in."
			a.formFocus = 0
			a.loginInputs[0].Focus()
			a.loginInputs[1].Blur()
			return a, textinput.Blink
		}
		if err := a.session.SetIdentity(msg.identity); err != nil {
			a.authErr = err.Error()
			return a, nil
		}
		a.client = a.newClient(a.session.AccessToken())
		a.authNotice = ""
		a.loginInputs[1].SetValue("")
		a.current = viewTopics
		a.cursor = 0
		return a, a.reloadTopicsCmd()

	case feedResolvedMsg:
		ctrl := a.topicFeed
		if msg.which == headlineFeedKind {
			ctrl = a.categoryFeed
		}
		if !ctrl.Resolve(msg.req, msg.page, msg.err) {
			return a, nil // stale; a newer request owns the state
		}
		if a.cursor >= len(ctrl.Items()) {
			a.cursor = max(0, len(ctrl.Items())-1)
		}
		if msg.err == nil {
			return a, a.recordSeenCmd(ctrl.Items(), msg.req.Query)
		}
		return a, nil

	case recsResolvedMsg:
		if a.recs.Resolve(msg.req, msg.set, msg.err) {
			if a.cursor >= len(a.recs.Items()) {
				a.cursor = max(0, len(a.recs.Items())-1)
			}
		}
		return a, nil

	case savedResolvedMsg:
		if msg.req != a.savedReq {
			return a, nil
		}
		a.savedLoading = false
		if msg.err != nil {
			if d := api.DetailOf(msg.err); d != "" {
				a.savedErr = d
			} else {
				a.savedErr = "Unable to load saved articles. Please try again."
			}
			return a, nil
		}
		a.savedArticles = msg.articles
		if a.cursor >= len(a.savedArticles) {
			a.cursor = max(0, len(a.savedArticles)-1)
		}
		return a, nil

	case adminResolvedMsg:
		a.adminLoading = false
		if msg.err != nil {
			if d := api.DetailOf(msg.err); d != "" {
				a.adminErr = d
			} else {
				a.adminErr = "Unable to load admin data. Check your admin key and backend."
			}
			return a, nil
		}
		a.admin = msg.snapshot
		a.adminLoaded = true
		return a, nil

	case interactionResolvedMsg:
		a.pipeline.Resolve(msg.ev, msg.err)
		var cmds []tea.Cmd
		if msg.err == nil {
			cmds = append(cmds, a.recordActionCmd(msg.ev.ArticleID, msg.ev.InteractionType))
		}
		if msg.openURL != "" {
			cmds = append(cmds, openBrowserCmd(msg.openURL))
		}
		cmds = append(cmds, a.feedbackTick())
		return a, tea.Batch(cmds...)

	case browserOpenedMsg:
		if msg.err != nil {
			a.err = msg.err
		}
		return a, nil

	case tickMsg:
		a.ticking = false
		if a.pipeline.Active() {
			return a, a.feedbackTick()
		}
		return a, nil

	case spinner.TickMsg:
		if a.anyLoading() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) anyLoading() bool {
	return a.authBusy || a.topicFeed.Loading() || a.categoryFeed.Loading() ||
		a.recs.Loading() || a.savedLoading || a.adminLoading
}

func authErrorMessage(err error, fallback string) string {
	if d := api.DetailOf(err); d != "" {
		return d
	}
	if err != nil {
		return fallback
	}
	return ""
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

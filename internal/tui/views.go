package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var tabOrder = []struct {
	v     view
	label string
}{
	{viewTopics, "1 News"},
	{viewHeadlines, "2 Headlines"},
	{viewRecs, "3 For You"},
	{viewSaved, "4 Saved"},
	{viewProfile, "5 Profile"},
	{viewAdmin, "6 Admin"},
}

func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	v := a.gate(a.current)

	switch v {
	case viewLogin:
		return a.renderLoginView()
	case viewSignup:
		return a.renderSignupView()
	}

	header := a.renderHeader()
	tabs := a.renderTabs(v)
	status := a.renderStatusBar(a.width)

	chrome := lipgloss.Height(header) + lipgloss.Height(tabs) + lipgloss.Height(status)
	bodyHeight := a.height - chrome
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch v {
	case viewTopics:
		body = a.renderTopicsView(bodyHeight)
	case viewHeadlines:
		body = a.renderHeadlinesView(bodyHeight)
	case viewRecs:
		body = a.renderRecsView(bodyHeight)
	case viewSaved:
		body = a.renderSavedView(bodyHeight)
	case viewProfile:
		body = a.renderProfileView(bodyHeight)
	case viewArticle:
		body = a.renderArticleView(bodyHeight)
	case viewAdmin:
		body = a.renderAdminView(bodyHeight)
	}

	body = fitHeight(body, bodyHeight)

	return header + "\n" + tabs + "\n" + body + "\n" + status
}

func (a *App) renderHeader() string {
	title := headerStyle.Render("newsline")
	date := headerDateStyle.Render(a.currentDate + " ")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(date)
	if gap < 0 {
		gap = 0
	}
	return title + strings.Repeat(" ", gap) + date
}

func (a *App) renderTabs(active view) string {
	parts := make([]string, 0, len(tabOrder))
	for _, t := range tabOrder {
		if t.v == active || (active == viewArticle && t.v == a.detailReturn) {
			parts = append(parts, tabActiveStyle.Render(t.label))
		} else {
			parts = append(parts, tabInactiveStyle.Render(t.label))
		}
	}
	return " " + strings.Join(parts, " ")
}

// fitHeight pads or trims body output so the status bar always lands on
// the last row.
func fitHeight(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		return strings.Join(lines[:height], "\n")
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

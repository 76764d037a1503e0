package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkravets/newsline/internal/interact"
)

func (a *App) renderStatusBar(width int) string {
	left := ""
	if kind, msg := a.pipeline.Feedback(); kind != interact.StatusIdle {
		if kind == interact.StatusSuccess {
			left = " " + successStyle.Render(msg)
		} else {
			left = " " + errorStyle.Render(msg)
		}
	} else if a.pipeline.InFlight() {
		left = " " + a.spinner.View() + " recording..."
	} else if a.anyLoading() {
		left = " " + a.spinner.View() + " loading..."
	} else if a.err != nil {
		left = " " + errorStyle.Render(a.err.Error())
	}

	right := " " + a.statusHints() + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

func (a *App) statusHints() string {
	if a.searching {
		return "esc cancel  enter search"
	}
	switch a.current {
	case viewLogin:
		return "tab next  enter sign in  ctrl+n sign up  ctrl+c quit"
	case viewSignup:
		return "tab next  enter create  esc back  ctrl+c quit"
	case viewArticle:
		return "o open  L like  S save  X dislike  esc back"
	case viewTopics:
		return "/ search  tab topic  ←/→ page  enter details  o open  q quit"
	case viewHeadlines:
		return "tab category  ←/→ page  enter details  o open  r refresh  q quit"
	case viewProfile:
		return "x log out  1-6 views  q quit"
	case viewAdmin:
		return "r refresh  1-6 views  q quit"
	default:
		return "enter details  o open  L like  S save  r refresh  q quit"
	}
}

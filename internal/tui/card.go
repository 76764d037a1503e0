package tui

import (
	"strings"

	"github.com/mkravets/newsline/internal/api"
	"github.com/mkravets/newsline/internal/interact"
)

func markerLabel(k interact.Kind) string {
	switch k {
	case interact.Like:
		return "✓ Liked"
	case interact.Save:
		return "✓ Saved"
	case interact.Dislike:
		return "✓ Disliked"
	case interact.Read:
		return "✓ Read"
	case interact.View:
		return "✓ Viewed"
	default:
		return "✓ Recorded"
	}
}

// renderArticleItem draws one list row: title, source/date meta line,
// and the optimistic marker while a recent interaction is live.
func (a *App) renderArticleItem(art api.Article, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(art.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(art.Title, width-4))
	}

	meta := "  " + itemSourceStyle.Render(art.Source.Name)
	if d := formatDate(art.PublishedAt); d != "" {
		meta += " " + itemTimeStyle.Render("· "+d)
	}
	if kind, ok := a.pipeline.Marker(art.Key()); ok {
		meta += "  " + markerStyle.Render(markerLabel(kind))
	}

	return title + "\n" + meta
}

func (a *App) renderArticleList(articles []api.Article, cursor int, height, width int) string {
	if len(articles) == 0 {
		return centerText("No articles found", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(articles) {
		end = len(articles)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(a.renderArticleItem(articles[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

func centerText(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	top := height / 3
	if top < 0 {
		top = 0
	}
	return strings.Repeat("\n", top) + strings.Repeat(" ", pad) + dimStyle.Render(s)
}

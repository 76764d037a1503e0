package tui

import (
	"fmt"
	"strings"
)

func (a *App) renderRecsView(height int) string {
	head := " " + formTitleStyle.Render("Recommended for "+a.session.UserID())
	if a.recs.ColdStart() {
		head += "  " + badgeStyle.Render("Source: Trending")
	}
	head += "\n"

	listHeight := height - 2

	switch {
	case a.recs.Loading():
		return head + centerText("Building your feed...", a.width, listHeight)
	case a.recs.Err() != "":
		return head + centerText(a.recs.Err(), a.width, listHeight)
	case len(a.recs.Items()) == 0:
		return head + centerText("No recommendations yet. Interact with some articles first.", a.width, listHeight)
	}

	items := a.recs.Items()

	itemHeight := 3
	visible := listHeight / itemHeight
	if visible < 1 {
		visible = 1
	}
	start := 0
	if a.cursor >= visible {
		start = a.cursor - visible + 1
	}
	end := start + visible
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	b.WriteString(head)
	for i := start; i < end; i++ {
		row := a.renderArticleItem(items[i].Article, i == a.cursor, a.width-12)
		if items[i].Score > 0 {
			score := scoreStyle.Render(fmt.Sprintf("%.2f", items[i].Score))
			lines := strings.SplitN(row, "\n", 2)
			lines[0] += "  " + score
			row = strings.Join(lines, "\n")
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

package tui

import (
	"fmt"
	"strings"
)

func (a *App) renderTopicsView(height int) string {
	var lines []string

	if a.searching {
		lines = append(lines, " "+a.searchInput.View())
	} else {
		lines = append(lines, " "+formTitleStyle.Render("Topic: ")+a.topicFeed.Query())
	}

	var picks []string
	for _, tp := range a.cfg.Topics {
		if tp == a.topicFeed.Query() {
			picks = append(picks, tabActiveStyle.Render(tp))
		} else {
			picks = append(picks, tabInactiveStyle.Render(tp))
		}
	}
	if len(picks) > 0 {
		lines = append(lines, " "+strings.Join(picks, " "))
	}
	lines = append(lines, "")

	head := strings.Join(lines, "\n")
	listHeight := height - len(lines) - 1

	var body string
	switch {
	case a.topicFeed.Loading():
		body = centerText("Fetching news...", a.width, listHeight)
	case a.topicFeed.Err() != "":
		body = centerText(a.topicFeed.Err(), a.width, listHeight)
	default:
		body = a.renderArticleList(a.topicFeed.Items(), a.cursor, listHeight, a.width-2)
	}

	return head + "\n" + body + "\n" + a.renderPagination(a.topicFeed.Page(), a.topicFeed.TotalPages(), a.topicFeed.Total())
}

func (a *App) renderHeadlinesView(height int) string {
	var cats []string
	for i, c := range a.cfg.Categories {
		if i == a.categoryIdx {
			cats = append(cats, tabActiveStyle.Render(c))
		} else {
			cats = append(cats, tabInactiveStyle.Render(c))
		}
	}
	head := " " + strings.Join(cats, " ") + "\n"

	listHeight := height - 3

	var body string
	switch {
	case a.categoryFeed.Loading():
		body = centerText("Fetching headlines...", a.width, listHeight)
	case a.categoryFeed.Err() != "":
		body = centerText(a.categoryFeed.Err(), a.width, listHeight)
	default:
		body = a.renderArticleList(a.categoryFeed.Items(), a.cursor, listHeight, a.width-2)
	}

	return head + "\n" + body + "\n" + a.renderPagination(a.categoryFeed.Page(), a.categoryFeed.TotalPages(), a.categoryFeed.Total())
}

func (a *App) renderPagination(page, totalPages, total int) string {
	line := fmt.Sprintf("Page %d of %d", page, totalPages)
	if total > 0 {
		line += fmt.Sprintf(" (%d total articles)", total)
	}
	return " " + dimStyle.Render(line)
}

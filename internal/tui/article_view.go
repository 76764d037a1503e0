package tui

import (
	"strings"
)

func (a *App) renderArticleView(height int) string {
	art := a.detail
	if art == nil {
		return centerText("No article selected.", a.width, height)
	}

	width := a.width - 4
	if width < 20 {
		width = 20
	}

	var lines []string
	lines = append(lines, itemTitleStyle.Render(wrapText(art.Title, width)))

	meta := itemSourceStyle.Render(art.Source.Name)
	if d := formatDate(art.PublishedAt); d != "" {
		meta += " " + itemTimeStyle.Render("· "+d)
	}
	if art.Topic != "" {
		meta += " " + itemTimeStyle.Render("· "+art.Topic)
	}
	if kind, ok := a.pipeline.Marker(art.Key()); ok {
		meta += "  " + markerStyle.Render(markerLabel(kind))
	}
	lines = append(lines, meta)
	lines = append(lines, "")

	if body := art.Body(); body != "" {
		lines = append(lines, itemBodyStyle.Render(wrapText(body, width)))
		lines = append(lines, "")
	}

	if len(art.Keywords) > 0 {
		tags := make([]string, len(art.Keywords))
		for i, k := range art.Keywords {
			tags[i] = keywordStyle.Render(k)
		}
		lines = append(lines, strings.Join(tags, " "))
		lines = append(lines, "")
	}

	if art.URL != "" {
		lines = append(lines, dimStyle.Render(truncateStr(art.URL, width)))
	}

	content := strings.Join(lines, "\n")
	return cardStyle.Width(width).Render(content)
}

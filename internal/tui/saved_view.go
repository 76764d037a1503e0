package tui

func (a *App) renderSavedView(height int) string {
	head := " " + formTitleStyle.Render("Saved articles") + "\n"
	listHeight := height - 2

	switch {
	case a.savedLoading:
		return head + centerText("Loading saved articles...", a.width, listHeight)
	case a.savedErr != "":
		return head + centerText(a.savedErr, a.width, listHeight)
	case len(a.savedArticles) == 0:
		return head + centerText("Nothing saved yet. Press S on an article to save it.", a.width, listHeight)
	}

	return head + a.renderArticleList(a.savedArticles, a.cursor, listHeight, a.width-2)
}

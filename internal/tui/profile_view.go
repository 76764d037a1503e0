package tui

import (
	"strings"
)

func (a *App) renderProfileView(height int) string {
	id := a.session.Current()
	if id == nil {
		return centerText("Not signed in.", a.width, height)
	}

	tokenType := id.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}

	var lines []string
	lines = append(lines, " "+formTitleStyle.Render("Profile"))
	lines = append(lines, "")
	lines = append(lines, profileField("User ID", id.UserID))
	if id.Name != "" {
		lines = append(lines, profileField("Name", id.Name))
	}
	if id.Email != "" {
		lines = append(lines, profileField("Email", id.Email))
	}
	lines = append(lines, profileField("Token type", tokenType))
	if exp, ok := a.session.TokenExpiry(); ok {
		lines = append(lines, profileField("Token expires", exp.Local().Format("Jan 02, 2006 15:04")))
	}
	lines = append(lines, "")
	lines = append(lines, " "+dimStyle.Render("x log out"))

	return strings.Join(lines, "\n")
}

func profileField(label, value string) string {
	return " " + fieldLabelStyle.Render(label+": ") + value
}

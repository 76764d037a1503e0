package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

var loginLabels = []string{"User ID", "Password"}
var signupLabels = []string{"User ID", "Email", "Password", "Name"}

func (a *App) renderLoginView() string {
	var lines []string
	lines = append(lines, formTitleStyle.Render("Sign in to newsline"))
	lines = append(lines, "")
	lines = append(lines, a.renderForm(loginLabels, a.loginInputs)...)
	lines = append(lines, "")

	if a.authBusy {
		lines = append(lines, a.spinner.View()+" signing in...")
	} else if a.authErr != "" {
		lines = append(lines, errorStyle.Render(a.authErr))
	} else if a.authNotice != "" {
		lines = append(lines, successStyle.Render(a.authNotice))
	}
	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("enter sign in · ctrl+n create an account · ctrl+c quit"))

	return a.centerForm(lines)
}

func (a *App) renderSignupView() string {
	var lines []string
	lines = append(lines, formTitleStyle.Render("Create an account"))
	lines = append(lines, "")
	lines = append(lines, a.renderForm(signupLabels, a.signupInputs)...)
	lines = append(lines, "")

	if a.authBusy {
		lines = append(lines, a.spinner.View()+" creating account...")
	} else if a.authErr != "" {
		lines = append(lines, errorStyle.Render(a.authErr))
	}
	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("enter create · esc back to sign in · ctrl+c quit"))

	return a.centerForm(lines)
}

func (a *App) renderForm(labels []string, inputs []textinput.Model) []string {
	lines := make([]string, 0, len(inputs)*2)
	for i := range inputs {
		lines = append(lines, fieldLabelStyle.Render(labels[i]))
		lines = append(lines, inputs[i].View())
	}
	return lines
}

func (a *App) centerForm(lines []string) string {
	content := strings.Join(lines, "\n")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

package tui

import (
	"fmt"
	"strings"
)

func (a *App) renderAdminView(height int) string {
	head := " " + formTitleStyle.Render("Admin") + "\n"

	switch {
	case a.adminLoading:
		return head + centerText("Loading admin data...", a.width, height-2)
	case a.adminErr != "":
		return head + centerText(a.adminErr, a.width, height-2)
	case !a.adminLoaded:
		return head + centerText("Press r to load admin data.", a.width, height-2)
	}

	var lines []string
	lines = append(lines, " "+formTitleStyle.Render("Admin"))
	lines = append(lines, "")
	lines = append(lines, adminSection("Users", len(a.admin.users)))
	for _, u := range firstN(a.admin.users, 5) {
		lines = append(lines, "   "+adminRow(u, "user_id", "email"))
	}
	lines = append(lines, "")
	lines = append(lines, adminSection("Interactions", len(a.admin.interactions)))
	for _, it := range firstN(a.admin.interactions, 5) {
		lines = append(lines, "   "+adminRow(it, "user_id", "interaction_type", "topic"))
	}
	lines = append(lines, "")
	lines = append(lines, adminSection("Profiles", len(a.admin.profiles)))
	for _, p := range firstN(a.admin.profiles, 5) {
		lines = append(lines, "   "+adminRow(p, "user_id"))
	}
	lines = append(lines, "")
	lines = append(lines, adminSection("Cache keys", len(a.admin.cacheKeys)))
	for _, k := range a.admin.cacheKeys[:min(len(a.admin.cacheKeys), 5)] {
		lines = append(lines, "   "+dimStyle.Render(truncateStr(k, a.width-6)))
	}

	return strings.Join(lines, "\n")
}

func adminSection(name string, count int) string {
	return " " + itemTitleStyle.Render(name) + " " + dimStyle.Render(fmt.Sprintf("(%d)", count))
}

// adminRow picks the named fields out of an untyped record, skipping
// ones the backend did not send.
func adminRow(rec map[string]any, fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if v, ok := rec[f]; ok {
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	if len(parts) == 0 {
		return dimStyle.Render("(record)")
	}
	return strings.Join(parts, " · ")
}

func firstN(recs []map[string]any, n int) []map[string]any {
	if len(recs) <= n {
		return recs
	}
	return recs[:n]
}

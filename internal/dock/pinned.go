package dock

import (
	"strings"

	"github.com/tessera-shell/tessera/internal/models"
)

// PinnedApps builds the pinned group, one button per configured term in
// order. A term matches the first client, in window-manager order, whose
// lowercased class contains it. The tooltip title is the running client's
// title, or the term itself when nothing matches.
func PinnedApps(terms []string, clients []models.Client, active string, icons IconSource) []models.PinnedApp {
	apps := make([]models.PinnedApp, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true

		app := models.PinnedApp{Term: term, Title: term}
		if icons != nil {
			icon := icons.Icon(term)
			app.IconPath, app.IconName = icon.Path, icon.Name
		}
		for i := range clients {
			c := &clients[i]
			if !strings.Contains(strings.ToLower(c.Class), term) {
				continue
			}
			app.Running = true
			app.Address = c.Address
			app.Title = c.Title
			app.Focused = active != "" && c.Address == active
			break
		}
		apps = append(apps, app)
	}
	return apps
}

// ABOUTME: Dashboard shell with a tab bar over the protected screens
// ABOUTME: Tab content is a placeholder panel; each screen's content lives elsewhere

package dashboard

import (
	"fmt"
	"strings"

	"github.com/DAVEMANUJ/skill-genome-2/internal/route"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/icons"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// descriptions summarize what each screen will show
var descriptions = map[route.Screen]string{
	route.ScreenHome:            "Overview of your skill genome and recent activity.",
	route.ScreenUpload:          "Upload a resume to extract your skills.",
	route.ScreenSkills:          "Skills detected from your resume and profiles.",
	route.ScreenRecommendations: "Roles and courses matched to your skills.",
	route.ScreenGitHub:          "Learning resources and repositories from GitHub.",
	route.ScreenPathways:        "Career pathways built from your current skill set.",
	route.ScreenProfile:         "Your account details.",
}

// Dashboard is the tabbed shell around the protected screens
type Dashboard struct {
	tabs   []route.Entry
	active int
	width  int
	height int
}

// New creates a dashboard over the given tabs, with the first one active
func New(tabs []route.Entry, width, height int) *Dashboard {
	return &Dashboard{
		tabs:   tabs,
		width:  width,
		height: height,
	}
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// SetActive selects the tab for a path. It reports false for paths outside the shell.
func (d *Dashboard) SetActive(path string) bool {
	p := route.Normalize(path)
	for i, t := range d.tabs {
		if t.Path == p {
			d.active = i
			return true
		}
	}
	return false
}

// Active returns the selected tab
func (d *Dashboard) Active() route.Entry {
	if len(d.tabs) == 0 {
		return route.Entry{}
	}
	return d.tabs[d.active]
}

// Next returns the path of the tab after the active one, wrapping around
func (d *Dashboard) Next() string {
	return d.offset(1)
}

// Prev returns the path of the tab before the active one, wrapping around
func (d *Dashboard) Prev() string {
	return d.offset(-1)
}

func (d *Dashboard) offset(delta int) string {
	n := len(d.tabs)
	if n == 0 {
		return route.LandingPath
	}
	return d.tabs[(d.active+delta+n)%n].Path
}

// PathAt returns the path of the 1-based tab number
func (d *Dashboard) PathAt(n int) (string, bool) {
	if n < 1 || n > len(d.tabs) {
		return "", false
	}
	return d.tabs[n-1].Path, true
}

// View renders the tab bar and the active panel
func (d *Dashboard) View() string {
	var sb strings.Builder

	sb.WriteString(d.renderTabs())
	sb.WriteString("\n\n")

	active := d.Active()
	sb.WriteString(styles.Title.Render(icons.ForScreen(active.Screen).String() + " " + active.Title))
	sb.WriteString("\n")
	if desc, ok := descriptions[active.Screen]; ok {
		sb.WriteString(styles.Subtitle.Render(desc))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Help.Render(fmt.Sprintf("Path: %s", active.Path)))

	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(sb.String())
}

func (d *Dashboard) renderTabs() string {
	parts := make([]string, 0, len(d.tabs))
	for i, t := range d.tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Title)
		if i == d.active {
			parts = append(parts, styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, styles.Tab.Render(label))
		}
	}
	return lipgloss.NewStyle().Width(d.width).Render(strings.Join(parts, " "))
}

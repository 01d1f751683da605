// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Routes every screen change through the navigator and owns child screens

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DAVEMANUJ/skill-genome-2/internal/form"
	"github.com/DAVEMANUJ/skill-genome-2/internal/route"
	"github.com/DAVEMANUJ/skill-genome-2/internal/session"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/dashboard"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/icons"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/login"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/recentusers"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/styles"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/widgets"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum frame width
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// App is the root model for the TUI
type App struct {
	auth   form.Authenticator
	store  session.Store
	table  *route.Table
	nav    *route.Navigator
	recent *recentusers.RecentUsers

	path   string
	screen route.Screen
	width  int
	height int
	flash  string
	err    error

	// Child models
	login     *login.Model
	dashboard *dashboard.Dashboard
}

// New creates the application and resolves the start path through the navigator.
// recent may be nil.
func New(auth form.Authenticator, store session.Store, startPath string, recent *recentusers.RecentUsers) *App {
	table := route.Default()
	a := &App{
		auth:   auth,
		store:  store,
		table:  table,
		nav:    route.NewNavigator(table, store),
		recent: recent,
	}
	a.navigate(startPath)
	return a
}

// Path returns the current resolved path
func (a *App) Path() string {
	return a.path
}

// Screen returns the screen being rendered
func (a *App) Screen() route.Screen {
	return a.screen
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.login != nil {
		return a.login.Init()
	}
	return nil
}

// Close tears down child screens. In-flight submissions are discarded.
func (a *App) Close() {
	if a.login != nil {
		a.login.Close()
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashboard != nil {
			a.dashboard.SetSize(a.innerWidth(), a.contentHeight())
		}
		if a.login != nil {
			a.login.SetWidth(a.innerWidth())
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			a.Close()
			return a, tea.Quit
		}
		a.flash = ""
		a.err = nil

		if a.screen == route.ScreenLogin {
			return a.updateLogin(msg)
		}
		return a.updateDashboard(msg)

	case login.LoggedInMsg:
		if err := a.recent.Add(msg.Username); err != nil {
			slog.Warn("Failed to record recent user", "error", err)
		}
		return a, a.navigate(msg.Path)

	default:
		// Auth results, spinner ticks and cursor blinks belong to the login screen
		if a.login != nil {
			return a.updateLogin(msg)
		}
	}

	return a, nil
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		a.Close()
		return a, tea.Quit
	}
	if a.login == nil {
		return a, nil
	}
	_, cmd := a.login.Update(msg)
	return a, cmd
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.dashboard == nil {
		return a, nil
	}

	switch key := msg.String(); key {
	case "q":
		return a, tea.Quit
	case "right", "tab":
		return a, a.navigate(a.dashboard.Next())
	case "left", "shift+tab":
		return a, a.navigate(a.dashboard.Prev())
	case "c":
		return a, a.navigate(route.DashboardPath + "/courses")
	case "l":
		return a, a.logout()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if p, ok := a.dashboard.PathAt(int(key[0] - '0')); ok {
			return a, a.navigate(p)
		}
	}
	return a, nil
}

// navigate resolves a path and swaps child screens to match
func (a *App) navigate(requested string) tea.Cmd {
	res, err := a.nav.Navigate(requested)
	if err != nil {
		slog.Error("Navigation failed", "path", requested, "error", err)
		a.err = err
		return nil
	}

	a.path = res.Path
	a.screen = res.Entry.Screen
	if res.Denied {
		a.flash = "Please log in to continue"
	}

	if a.screen == route.ScreenLogin {
		if a.login == nil {
			ctrl := form.New(a.store)
			if last := a.recent.Last(); last != "" {
				ctrl.UpdateField(form.FieldUsername, last)
			}
			a.login = login.New(ctrl, a.auth)
			a.login.SetWidth(a.innerWidth())
			return a.login.Init()
		}
		return nil
	}

	// Leaving the login screen tears it down
	if a.login != nil {
		a.login.Close()
		a.login = nil
	}
	if a.dashboard == nil {
		a.dashboard = dashboard.New(a.table.Tabs(), a.innerWidth(), a.contentHeight())
	}
	a.dashboard.SetActive(a.path)
	return nil
}

func (a *App) logout() tea.Cmd {
	if err := a.store.Clear(); err != nil {
		slog.Error("Failed to clear session", "error", err)
		a.err = fmt.Errorf("logout failed: %w", err)
		return nil
	}
	a.dashboard = nil
	cmd := a.navigate(route.LandingPath)
	a.flash = "Logged out"
	return cmd
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case route.ScreenLogin:
		content = a.viewLogin()
	default:
		content = a.viewDashboard()
	}

	if a.err != nil {
		content = styles.StatusCritical.Render("Error: "+a.err.Error()) + "\n" + content
	} else if a.flash != "" {
		content = styles.StatusWarning.Render(icons.Info.String()+" "+a.flash) + "\n" + content
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewLogin() string {
	if a.login == nil {
		return ""
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.login.View())
}

func (a *App) viewDashboard() string {
	if a.dashboard == nil {
		return styles.Panel.Width(a.contentWidth()).Render("Loading...")
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.dashboard.View())
}

// frameWidth is the terminal width, clamped to the minimum
func (a *App) frameWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth
	}
	return a.width
}

// contentWidth calculates the width for the main panel
func (a *App) contentWidth() int {
	return a.frameWidth() - panelPadding
}

// innerWidth is the space inside a panel's padding
func (a *App) innerWidth() int {
	return a.contentWidth() - panelPadding
}

// contentHeight calculates the height available for panel content
func (a *App) contentHeight() int {
	// Header, footer, flash line and panel border+padding
	h := a.height - 9
	if h < 5 {
		return 5
	}
	return h
}

// renderHeader creates the header bar with app branding and session state
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("SkillGenome"))
	rightText := " " + widgets.SessionBadge(a.store.Get().Present()) + " "

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╭─") + leftText + borderStyle.Render(strings.Repeat("─", fillWidth)) + rightText + borderStyle.Render("─╮")
}

// renderFooter creates the footer with keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	pathStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case route.ScreenLogin:
		shortcuts = []string{"Tab Next", "Enter Submit", "Ctrl+T Mode", "Esc Quit"}
	default:
		shortcuts = []string{"←→ Tabs", "c Courses", "l Logout", "q Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	rightText := pathStyle.Render(a.path) + " "

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╰─") + leftText + borderStyle.Render(strings.Repeat("─", fillWidth)) + rightText + borderStyle.Render("─╯")
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI at startPath
func Run(ctx context.Context, auth form.Authenticator, store session.Store, startPath string, recent *recentusers.RecentUsers) error {
	app := New(auth, store, startPath, recent)
	defer app.Close()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

// ABOUTME: Tests for the dashboard shell
// ABOUTME: Validates tab selection, wrap-around and placeholder rendering

package dashboard

import (
	"strings"
	"testing"

	"github.com/DAVEMANUJ/skill-genome-2/internal/route"
)

func newDashboard() *Dashboard {
	return New(route.Default().Tabs(), 140, 20)
}

func TestDashboardDefaultsToFirstTab(t *testing.T) {
	d := newDashboard()

	if d.Active().Screen != route.ScreenHome {
		t.Errorf("expected home tab, got %s", d.Active().Screen)
	}
}

func TestDashboardSetActive(t *testing.T) {
	d := newDashboard()

	if !d.SetActive("/dashboard/skills") {
		t.Fatal("expected skills to be a tab")
	}
	if d.Active().Screen != route.ScreenSkills {
		t.Errorf("expected skills, got %s", d.Active().Screen)
	}
	if d.SetActive("/") {
		t.Error("landing is not a dashboard tab")
	}
	if d.SetActive("/dashboard/courses") {
		t.Error("alias is not a dashboard tab")
	}
}

func TestDashboardNextPrevWrap(t *testing.T) {
	d := newDashboard()

	if got := d.Prev(); got != "/dashboard/profile" {
		t.Errorf("expected prev to wrap to profile, got %s", got)
	}
	if got := d.Next(); got != "/dashboard/upload" {
		t.Errorf("expected next to be upload, got %s", got)
	}

	d.SetActive("/dashboard/profile")
	if got := d.Next(); got != "/dashboard" {
		t.Errorf("expected next to wrap to /dashboard, got %s", got)
	}
}

func TestDashboardPathAt(t *testing.T) {
	d := newDashboard()

	tests := []struct {
		n    int
		path string
		ok   bool
	}{
		{1, "/dashboard", true},
		{5, "/dashboard/github", true},
		{7, "/dashboard/profile", true},
		{0, "", false},
		{8, "", false},
	}

	for _, tc := range tests {
		got, ok := d.PathAt(tc.n)
		if got != tc.path || ok != tc.ok {
			t.Errorf("PathAt(%d) = %q, %v; want %q, %v", tc.n, got, ok, tc.path, tc.ok)
		}
	}
}

func TestDashboardView(t *testing.T) {
	d := newDashboard()
	d.SetActive("/dashboard/pathways")
	view := d.View()

	for _, expected := range []string{"Resume Upload", "Career Pathways", "/dashboard/pathways", "career pathways built"} {
		if !strings.Contains(strings.ToLower(view), strings.ToLower(expected)) {
			t.Errorf("expected view to contain %q\nView:\n%s", expected, view)
		}
	}
}

func TestDashboardEmptyTabs(t *testing.T) {
	d := New(nil, 80, 10)

	if d.Next() != route.LandingPath {
		t.Error("expected landing when there are no tabs")
	}
	if d.Active() != (route.Entry{}) {
		t.Error("expected zero entry")
	}
	_ = d.View()
}

// ABOUTME: Tests for the route guard and navigator
// ABOUTME: Verifies protected-subtree gating, aliases and the catch-all redirect

package route

import (
	"testing"

	"github.com/DAVEMANUJ/skill-genome-2/internal/session"
)

var protectedPaths = []string{
	"/dashboard",
	"/dashboard/upload",
	"/dashboard/skills",
	"/dashboard/recommendations",
	"/dashboard/github",
	"/dashboard/pathways",
	"/dashboard/profile",
}

func newGuard(loggedIn bool) (*Guard, session.Store) {
	store := session.NewStore(session.NewMemoryStorage())
	if loggedIn {
		store.Set("abc", "42")
	}
	return NewGuard(Default(), store), store
}

func TestGuardLandingAlwaysAllowed(t *testing.T) {
	for _, loggedIn := range []bool{false, true} {
		g, _ := newGuard(loggedIn)
		if d := g.Decide("/"); !d.Allow {
			t.Errorf("loggedIn=%v: expected landing allowed, got %s", loggedIn, d)
		}
	}
}

func TestGuardProtectedWithoutSession(t *testing.T) {
	g, _ := newGuard(false)

	for _, p := range protectedPaths {
		t.Run(p, func(t *testing.T) {
			d := g.Decide(p)
			if d.Allow || d.Redirect != "/" {
				t.Errorf("expected redirect to /, got %s", d)
			}
		})
	}
}

func TestGuardProtectedWithSession(t *testing.T) {
	g, _ := newGuard(true)

	for _, p := range protectedPaths {
		t.Run(p, func(t *testing.T) {
			if d := g.Decide(p); !d.Allow {
				t.Errorf("expected allow, got %s", d)
			}
		})
	}
}

func TestGuardReadsSessionEveryCall(t *testing.T) {
	g, store := newGuard(true)

	if !g.Decide("/dashboard/skills").Allow {
		t.Fatal("expected allow while logged in")
	}
	store.Clear()
	if g.Decide("/dashboard/skills").Allow {
		t.Error("expected redirect right after logout")
	}
	store.Set("t2", "u2")
	if !g.Decide("/dashboard/skills").Allow {
		t.Error("expected allow after logging back in")
	}
}

func TestGuardPartialSessionIsAbsent(t *testing.T) {
	storage := session.NewMemoryStorage()
	storage.SetItem(session.TokenKey, "abc")
	g := NewGuard(Default(), session.NewStore(storage))

	if g.Decide("/dashboard").Allow {
		t.Error("expected token without user id to be treated as logged out")
	}
}

func TestGuardUnknownPaths(t *testing.T) {
	for _, loggedIn := range []bool{false, true} {
		g, _ := newGuard(loggedIn)
		for _, p := range []string{"/nope", "/dashboard/nope", "/dashboardx", "/login"} {
			d := g.Decide(p)
			if d.Allow || d.Redirect != "/" {
				t.Errorf("loggedIn=%v %s: expected redirect to /, got %s", loggedIn, p, d)
			}
		}
	}
}

func TestGuardCoursesAlias(t *testing.T) {
	for _, loggedIn := range []bool{false, true} {
		g, _ := newGuard(loggedIn)
		d := g.Decide("/dashboard/courses")
		if d.Allow || d.Redirect != "/dashboard/github" {
			t.Errorf("loggedIn=%v: expected redirect to /dashboard/github, got %s", loggedIn, d)
		}
	}
}

func TestGuardNormalizesPaths(t *testing.T) {
	g, _ := newGuard(true)

	for _, p := range []string{"/dashboard/", "dashboard/skills", "/dashboard/./skills", "/dashboard/skills?tab=1"} {
		if d := g.Decide(p); !d.Allow {
			t.Errorf("%q: expected allow, got %s", p, d)
		}
	}
	if d := g.Decide(""); !d.Allow {
		t.Errorf("empty path: expected landing allowed, got %s", d)
	}
}

func TestNavigateWithoutSession(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage())
	n := NewNavigator(Default(), store)

	res, err := n.Navigate("/dashboard/skills")
	if err != nil {
		t.Fatalf("Navigate() error: %v", err)
	}
	if res.Path != "/" || res.Entry.Screen != ScreenLogin {
		t.Errorf("expected landing on login, got %s (%s)", res.Path, res.Entry.Screen)
	}
	if !res.Denied {
		t.Error("expected Denied to be set")
	}
	if len(res.Hops) != 1 || res.Hops[0] != "/" {
		t.Errorf("expected single hop to /, got %v", res.Hops)
	}
}

func TestNavigateCoursesAlias(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage())
	n := NewNavigator(Default(), store)
	store.Set("abc", "42")

	res, err := n.Navigate("/dashboard/courses")
	if err != nil {
		t.Fatalf("Navigate() error: %v", err)
	}
	if res.Path != "/dashboard/github" || res.Entry.Screen != ScreenGitHub {
		t.Errorf("expected github screen, got %s", res.Path)
	}

	// Logged out: the alias still applies first, then the guard turns the target away
	store.Clear()
	res, _ = n.Navigate("/dashboard/courses")
	if len(res.Hops) != 2 || res.Hops[0] != "/dashboard/github" || res.Hops[1] != "/" {
		t.Errorf("expected hops [/dashboard/github /], got %v", res.Hops)
	}
	if res.Path != "/" {
		t.Errorf("expected to land on /, got %s", res.Path)
	}
}

func TestNavigateDirectAllow(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage())
	store.Set("abc", "42")
	n := NewNavigator(Default(), store)

	res, err := n.Navigate("/dashboard")
	if err != nil {
		t.Fatalf("Navigate() error: %v", err)
	}
	if res.Entry.Screen != ScreenHome || len(res.Hops) != 0 || res.Denied {
		t.Errorf("unexpected resolution %+v", res)
	}
}

func TestNavigateRedirectLoop(t *testing.T) {
	table := NewTable(nil, map[string]string{"/a": "/b", "/b": "/a"})
	n := NewNavigator(table, session.NewStore(session.NewMemoryStorage()))

	if _, err := n.Navigate("/a"); err == nil {
		t.Error("expected error for redirect loop")
	}
}

func TestDefaultTableTabs(t *testing.T) {
	tabs := Default().Tabs()
	if len(tabs) != len(protectedPaths) {
		t.Fatalf("expected %d tabs, got %d", len(protectedPaths), len(tabs))
	}
	for i, p := range protectedPaths {
		if tabs[i].Path != p {
			t.Errorf("tab %d: expected %s, got %s", i, p, tabs[i].Path)
		}
	}
}

func TestCoursesIsNotAScreen(t *testing.T) {
	if _, ok := Default().Lookup("/dashboard/courses"); ok {
		t.Error("courses must be a redirect-only alias")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"", "/"},
		{"/", "/"},
		{"  /dashboard/  ", "/dashboard"},
		{"dashboard", "/dashboard"},
		{"/dashboard//skills", "/dashboard/skills"},
		{"/dashboard/../", "/"},
		{"/dashboard#top", "/dashboard"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.out {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

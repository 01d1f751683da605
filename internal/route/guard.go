// ABOUTME: Route guard gating protected screens on session presence
// ABOUTME: Decides Allow or RedirectTo for each navigation and follows redirects

package route

import (
	"fmt"
	"log/slog"

	"github.com/DAVEMANUJ/skill-genome-2/internal/session"
)

// maxRedirects bounds redirect chains so a bad table cannot loop forever
const maxRedirects = 8

// Decision is the guard's verdict for one navigation attempt
type Decision struct {
	Allow    bool
	Redirect string
}

// Allow lets the navigation through
func Allow() Decision {
	return Decision{Allow: true}
}

// RedirectTo sends the navigation elsewhere
func RedirectTo(p string) Decision {
	return Decision{Redirect: Normalize(p)}
}

// String returns the string representation of a Decision
func (d Decision) String() string {
	if d.Allow {
		return "allow"
	}
	return "redirect " + d.Redirect
}

// Guard decides whether a path may be shown.
// A present token is enough; the token is not revalidated or checked for expiry.
type Guard struct {
	table *Table
	store session.Store
}

// NewGuard creates a guard over a navigation table and a session store
func NewGuard(table *Table, store session.Store) *Guard {
	return &Guard{table: table, store: store}
}

// Decide reads the session on every call
func (g *Guard) Decide(requested string) Decision {
	p := Normalize(requested)

	if p == LandingPath {
		return Allow()
	}
	// Aliases are redirect-only and carry no content of their own
	if to, ok := g.table.Alias(p); ok {
		return RedirectTo(to)
	}

	e, ok := g.table.Lookup(p)
	if !ok {
		return RedirectTo(LandingPath)
	}
	if !e.Protected {
		return Allow()
	}
	if g.store.Get().Present() {
		return Allow()
	}
	return RedirectTo(LandingPath)
}

// Resolution is where a navigation finally lands
type Resolution struct {
	Path   string
	Entry  Entry
	Hops   []string
	Denied bool
}

// Navigator applies the guard and follows redirects to a renderable screen
type Navigator struct {
	guard *Guard
	table *Table
}

// NewNavigator creates a navigator
func NewNavigator(table *Table, store session.Store) *Navigator {
	return &Navigator{guard: NewGuard(table, store), table: table}
}

// Guard exposes the underlying guard
func (n *Navigator) Guard() *Guard {
	return n.guard
}

// Navigate resolves a requested path. Hops lists every redirect taken.
// Denied is set when the guard turned a protected path away for lack of a session.
func (n *Navigator) Navigate(requested string) (Resolution, error) {
	p := Normalize(requested)
	res := Resolution{}

	for i := 0; i <= maxRedirects; i++ {
		d := n.guard.Decide(p)
		if d.Allow {
			e, _ := n.table.Lookup(p)
			res.Path = p
			res.Entry = e
			return res, nil
		}

		if e, ok := n.table.Lookup(p); ok && e.Protected && d.Redirect == LandingPath {
			res.Denied = true
		}
		slog.Debug("Navigation redirected", "from", p, "to", d.Redirect)
		res.Hops = append(res.Hops, d.Redirect)
		p = d.Redirect
	}
	return res, fmt.Errorf("too many redirects resolving %s", requested)
}

// ABOUTME: Open command for the skillgenome CLI
// ABOUTME: Resolves a path through the route guard, optionally starting the TUI there

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/DAVEMANUJ/skill-genome-2/internal/route"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/recentusers"
	"github.com/spf13/cobra"
)

var openTUI bool

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Resolve a dashboard path through the route guard",
	Long: `Show where a path leads given the stored session. Protected paths without a
session resolve to the login page. With --tui the interactive UI starts at the path.

Exit codes:
  0 - The path resolved to the requested screen
  1 - The guard redirected to the login page
  2 - Error`,
	Example: `  skillgenome open /dashboard/skills
  skillgenome open /dashboard/courses --json
  skillgenome open /dashboard/profile --tui`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runOpen(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().BoolVar(&openTUI, "tui", false, "Start the interactive UI at the path")
}

// openOutput is the JSON shape of the open command
type openOutput struct {
	Requested string   `json:"requested"`
	Path      string   `json:"path"`
	Screen    string   `json:"screen"`
	Title     string   `json:"title,omitempty"`
	Hops      []string `json:"hops,omitempty"`
	Denied    bool     `json:"denied"`
}

// runOpen resolves a path and returns exit code
func runOpen(ctx context.Context, w io.Writer, requested string) int {
	if openTUI {
		cfg, c, store, err := setup()
		if err != nil {
			return printError(w, err)
		}
		if err := tui.Run(ctx, c, store, requested, recentusers.New(cfg.ConfigDir)); err != nil {
			return printError(w, err)
		}
		return exitOK
	}

	cfg, err := resolveConfig()
	if err != nil {
		return printError(w, err)
	}
	store, err := newStore(cfg)
	if err != nil {
		return printError(w, err)
	}

	res, err := route.NewNavigator(route.Default(), store).Navigate(requested)
	if err != nil {
		return printError(w, err)
	}

	out := openOutput{
		Requested: requested,
		Path:      res.Path,
		Screen:    res.Entry.Screen.String(),
		Title:     res.Entry.Title,
		Hops:      res.Hops,
		Denied:    res.Denied,
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatOpenHuman(out))
	}

	if res.Denied {
		return exitFailure
	}
	return exitOK
}

// formatOpenHuman formats a resolution for human readability
func formatOpenHuman(out openOutput) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s -> %s (%s)", out.Requested, out.Path, out.Screen))
	if len(out.Hops) > 0 {
		sb.WriteString(fmt.Sprintf("\nRedirects: %s", strings.Join(out.Hops, " -> ")))
	}
	if out.Denied {
		sb.WriteString("\nPlease log in to continue. Run 'skillgenome login' first.")
	}
	return sb.String()
}

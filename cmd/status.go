// ABOUTME: Status command for the skillgenome CLI
// ABOUTME: Checks backend reachability and reports whether a session is stored

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend and session status",
	Long: `Check that the backend answers on /health and report whether a session is stored.

Exit codes:
  0 - Backend reachable
  2 - Backend unreachable or configuration error`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runStatus(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// statusOutput is the JSON shape of the status command
type statusOutput struct {
	APIURL    string `json:"api_url"`
	Reachable bool   `json:"reachable"`
	Error     string `json:"error,omitempty"`
	LoggedIn  bool   `json:"logged_in"`
	UserID    string `json:"user_id,omitempty"`
}

// runStatus executes the status check and returns exit code
func runStatus(ctx context.Context, w io.Writer) int {
	_, c, store, err := setup()
	if err != nil {
		return printError(w, err)
	}

	s := store.Get()
	out := statusOutput{
		APIURL:   c.BaseURL(),
		LoggedIn: s.Present(),
		UserID:   s.UserID,
	}
	if err := c.Health(ctx); err != nil {
		out.Error = err.Error()
	} else {
		out.Reachable = true
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatStatusHuman(out))
	}

	if !out.Reachable {
		return exitError
	}
	return exitOK
}

// formatStatusHuman formats status for human readability
func formatStatusHuman(out statusOutput) string {
	backend := "reachable"
	if !out.Reachable {
		backend = "unreachable (" + out.Error + ")"
	}
	sess := "not logged in"
	if out.LoggedIn {
		sess = "logged in as user " + out.UserID
	}
	return fmt.Sprintf("Backend:  %s [%s]\nSession:  %s", out.APIURL, backend, sess)
}

// ABOUTME: Login command for the skillgenome CLI
// ABOUTME: Authenticates against the backend and stores the session token

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DAVEMANUJ/skill-genome-2/internal/client"
	"github.com/DAVEMANUJ/skill-genome-2/internal/form"
	"github.com/DAVEMANUJ/skill-genome-2/internal/session"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/prompt"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/recentusers"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store a session",
	Long: `Log in to SkillGenome. Missing credentials are prompted for when running in a terminal.

Exit codes:
  0 - Logged in
  1 - The backend rejected the credentials
  2 - Error (connectivity, missing input, configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
}

// authOutput is the JSON shape shared by login and register
type authOutput struct {
	Status     string `json:"status"`
	Mode       string `json:"mode"`
	UserID     string `json:"user_id,omitempty"`
	NavigateTo string `json:"navigate_to,omitempty"`
	Message    string `json:"message,omitempty"`
}

// runLogin executes a login and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	cfg, c, store, err := setup()
	if err != nil {
		return printError(w, err)
	}
	recent := recentusers.New(cfg.ConfigDir)

	fields := form.Fields{Username: loginUsername, Password: loginPassword}
	code, username := submitCredentials(ctx, w, c, store, client.ModeLogin, fields, recent.List())
	if code == exitOK {
		if err := recent.Add(username); err != nil {
			slog.Warn("Failed to record recent user", "error", err)
		}
	}
	return code
}

// submitCredentials prompts for anything missing, then runs the form controller.
// It returns the exit code and the username that was submitted.
func submitCredentials(ctx context.Context, w io.Writer, auth form.Authenticator, store session.Store, mode client.Mode, fields form.Fields, suggestions []string) (int, string) {
	if len(prompt.Missing(mode, fields)) > 0 && interactive() && !IsJSONOutput() {
		if err := askCredentials(mode, &fields, suggestions); err != nil {
			return printError(w, err), fields.Username
		}
	}

	ctrl := form.New(store)
	if mode == client.ModeSignUp {
		if err := ctrl.ToggleMode(); err != nil {
			return printError(w, err), fields.Username
		}
	}
	for _, f := range form.RequiredFields(mode) {
		if err := ctrl.UpdateField(f, fields.Get(f)); err != nil {
			return printError(w, err), fields.Username
		}
	}

	out, err := ctrl.Submit(ctx, auth)
	if err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(w, "Error: %v (use --%s)\n", verr, verr.Field)
			return exitError, fields.Username
		}
		return printError(w, err), fields.Username
	}

	st := ctrl.State()
	result := authOutput{Mode: mode.String(), NavigateTo: out.NavigateTo}
	code := exitOK

	switch {
	case st.Submission.Status == form.StatusFailed:
		result.Status = "failed"
		result.Message = st.Submission.Message
		code = exitFailure
	case mode == client.ModeSignUp:
		result.Status = "created"
		result.Message = st.Notice
	default:
		result.Status = "ok"
		result.UserID = store.Get().UserID
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatAuthHuman(result, fields.Username))
	}
	return code, fields.Username
}

// formatAuthHuman formats an auth outcome for human readability
func formatAuthHuman(r authOutput, username string) string {
	switch r.Status {
	case "failed":
		return "FAILED: " + r.Message
	case "created":
		return r.Message
	default:
		return fmt.Sprintf("Logged in as %s (user %s)", username, r.UserID)
	}
}

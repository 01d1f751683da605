// ABOUTME: Whoami command for the skillgenome CLI
// ABOUTME: Shows the stored session and, for JWT tokens, their claimed expiry

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/DAVEMANUJ/skill-genome-2/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored session",
	Long: `Show the stored session. Token claims are decoded without verification and are
informational only; the backend remains the authority on whether a token is valid.

Exit codes:
  0 - A session is stored
  1 - Not logged in
  2 - Error`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runWhoami(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// tokenInfo is what can be read from a token without verifying it
type tokenInfo struct {
	Format    string     `json:"format"`
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
}

// whoamiOutput is the JSON shape of the whoami command
type whoamiOutput struct {
	LoggedIn bool       `json:"logged_in"`
	UserID   string     `json:"user_id,omitempty"`
	Token    string     `json:"token,omitempty"`
	Claims   *tokenInfo `json:"claims,omitempty"`
}

// runWhoami prints the session and returns exit code
func runWhoami(w io.Writer) int {
	cfg, err := resolveConfig()
	if err != nil {
		return printError(w, err)
	}
	store, err := newStore(cfg)
	if err != nil {
		return printError(w, err)
	}

	out := describeSession(store.Get(), time.Now())

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(out))
	}

	if !out.LoggedIn {
		return exitFailure
	}
	return exitOK
}

func describeSession(s session.Session, now time.Time) whoamiOutput {
	if !s.Present() {
		return whoamiOutput{}
	}
	return whoamiOutput{
		LoggedIn: true,
		UserID:   s.UserID,
		Token:    maskToken(s.Token),
		Claims:   inspectToken(s.Token, now),
	}
}

// inspectToken decodes JWT claims without checking the signature.
// Opaque tokens report format "opaque".
func inspectToken(token string, now time.Time) *tokenInfo {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return &tokenInfo{Format: "opaque"}
	}

	info := &tokenInfo{Format: "jwt"}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time.UTC()
		info.ExpiresAt = &t
		info.Expired = !t.After(now)
	}
	return info
}

// maskToken keeps only enough of the token to tell sessions apart
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// formatWhoamiHuman formats the session for human readability
func formatWhoamiHuman(out whoamiOutput) string {
	if !out.LoggedIn {
		return "Not logged in. Run 'skillgenome login' first."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("User ID:  %s\n", out.UserID))
	sb.WriteString(fmt.Sprintf("Token:    %s (%s)", out.Token, out.Claims.Format))
	if out.Claims.Subject != "" {
		sb.WriteString(fmt.Sprintf("\nSubject:  %s", out.Claims.Subject))
	}
	if out.Claims.ExpiresAt != nil {
		state := "valid until"
		if out.Claims.Expired {
			state = "expired at"
		}
		sb.WriteString(fmt.Sprintf("\nExpiry:   %s %s", state, out.Claims.ExpiresAt.Format(time.RFC3339)))
	}
	return sb.String()
}

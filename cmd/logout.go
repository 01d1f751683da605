// ABOUTME: Logout command for the skillgenome CLI
// ABOUTME: Clears the stored session after an optional confirmation

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var logoutYes bool

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Long:  `Remove the stored session token. Asks for confirmation in a terminal unless --yes is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	logoutCmd.Flags().BoolVarP(&logoutYes, "yes", "y", false, "Skip the confirmation prompt")
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	cfg, err := resolveConfig()
	if err != nil {
		return printError(w, err)
	}
	store, err := newStore(cfg)
	if err != nil {
		return printError(w, err)
	}

	status := "logged_out"
	if !store.Get().Present() {
		status = "not_logged_in"
	} else {
		if !logoutYes && interactive() && !IsJSONOutput() {
			ok, err := askConfirm("Log out of SkillGenome?")
			if err != nil {
				return printError(w, err)
			}
			if !ok {
				fmt.Fprintln(w, "Cancelled")
				return exitOK
			}
		}
		if err := store.Clear(); err != nil {
			return printError(w, fmt.Errorf("failed to clear session: %w", err))
		}
		slog.Info("Logged out")
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{"status": status}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else if status == "not_logged_in" {
		fmt.Fprintln(w, "Not logged in")
	} else {
		fmt.Fprintln(w, "Logged out")
	}
	return exitOK
}

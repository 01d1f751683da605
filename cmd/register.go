// ABOUTME: Register command for the skillgenome CLI
// ABOUTME: Creates an account; the user logs in separately afterwards

package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/DAVEMANUJ/skill-genome-2/internal/client"
	"github.com/DAVEMANUJ/skill-genome-2/internal/form"
	"github.com/spf13/cobra"
)

var (
	registerName     string
	registerUsername string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create a SkillGenome account. Registration does not log you in.

Exit codes:
  0 - Account created
  1 - The backend rejected the registration
  2 - Error (connectivity, missing input, configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (prompted when omitted)")
}

// runRegister executes a registration and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	_, c, store, err := setup()
	if err != nil {
		return printError(w, err)
	}

	fields := form.Fields{
		Name:     registerName,
		Username: registerUsername,
		Email:    registerEmail,
		Password: registerPassword,
	}
	code, _ := submitCredentials(ctx, w, c, store, client.ModeSignUp, fields, nil)
	return code
}

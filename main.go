// ABOUTME: Entry point for the skillgenome CLI
// ABOUTME: Terminal client for SkillGenome sign-in and dashboard navigation

package main

import (
	"fmt"
	"os"

	"github.com/DAVEMANUJ/skill-genome-2/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

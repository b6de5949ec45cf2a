// Package commands provides the CLI commands for the Quill governance
// core.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/logging"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	logLevel string
	workDir  string
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill - command governance core for the Quill note-taking app",
	Long: `Quill hosts the command registry, audit log, agent tool catalog,
and plan executor that govern every operation in the Quill note-taking
app. Run 'quill serve' to start the core with the HTTP inspection API,
or 'quill tools' to inspect the agent tool catalog.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logging.Config{
			Level:  logging.ParseLevel(logLevel),
			Pretty: true,
		})
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "directory", "C", "", "Project directory (defaults to the working directory)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("quill %s (%s)\n", Version, BuildTime))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(auditCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

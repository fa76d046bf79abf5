// Package cli implements the waffle command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/raksonibs/waffle/internal/core/ports/driving"
	"github.com/raksonibs/waffle/internal/logger"
)

var (
	// version is set by goreleaser ldflags.
	version = "dev"

	// verbose enables debug logging.
	verbose bool

	// Injected service implementations for CLI commands.
	calendarService driving.CalendarService
	configPath      string
)

// Services holds the service implementations CLI commands run against.
type Services struct {
	Calendar driving.CalendarService
	// ConfigPath is where `waffle config` commands read and write.
	// Empty uses the default location.
	ConfigPath string
}

// SetServices injects service implementations for CLI commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	calendarService = s.Calendar
	configPath = s.ConfigPath
}

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "waffle",
	Short: "Office 365 calendar sync for your desktop",
	Long: `Waffle connects Office 365 calendar accounts and keeps a local view of
their events in sync using the provider's delta protocol.

Connect an account with 'waffle account add', then fetch events with
'waffle sync'.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.Version = version
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"ftpprobe/internal/config"
	"ftpprobe/internal/scenario"
	"ftpprobe/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error, including recorded check
	// failures when --fail-on-errors is set.
	ExitCodeError = 1
	// ExitCodeInvalidStorage indicates an unknown storage backend was requested.
	ExitCodeInvalidStorage = 2
	// ExitCodeConfig indicates an unreadable or invalid configuration.
	ExitCodeConfig = 3
)

var debug bool

// rootCmd represents the base command for the ftpprobe application.
var rootCmd = &cobra.Command{
	Use:   "ftpprobe",
	Short: "End-to-end checks for an FTP/SFTP/SCP file server",
	Long: `ftpprobe drives curl, scp and adb against a running file server and
checks every directory listing and transferred file along the way.

All checks of a run are collected and reported together at the end, tagged
with the scenario that produced them.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if debug {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "ftpprobe version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// ChecksFailedError is returned by run when checks failed and the caller
// asked for a non-zero exit status.
type ChecksFailedError struct {
	Count int
}

func (e *ChecksFailedError) Error() string {
	return fmt.Sprintf("%d checks failed", e.Count)
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var invalidStorage *scenario.InvalidStorageError
	if errors.As(err, &invalidStorage) {
		return ExitCodeInvalidStorage
	}

	var configErr config.ConfigurationError
	if errors.As(err, &configErr) {
		return ExitCodeConfig
	}

	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newKeysCmd())
	rootCmd.AddCommand(newReleaseCmd())
}

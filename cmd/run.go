package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"ftpprobe/internal/config"
	"ftpprobe/internal/device"
	"ftpprobe/internal/keys"
	"ftpprobe/internal/process"
	"ftpprobe/internal/protocol"
	"ftpprobe/internal/report"
	"ftpprobe/internal/scenario"
	"ftpprobe/internal/verify"
	"ftpprobe/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	runStorage      string
	runConfigPath   string
	runSkipForward  bool
	runReportPath   string
	runTable        bool
	runFailOnErrors bool
	runOnly         []string
	runHost         string
	runKeyDir       string
	runTestFile     string
	runTmpDir       string
	runRemoveFwd    bool
)

func completeStorageFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(scenario.Storages))
	for i, s := range scenario.Storages {
		names[i] = string(s)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func completeOnlyFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return scenario.StepNames, cobra.ShellCompDirectiveNoFileComp
}

var runCmd = &cobra.Command{
	Use:   "run [storage <fs|root|saf|safro>]",
	Short: "Run the end-to-end checks against one storage backend",
	Long: `Run forwards the server ports from the device with adb, then runs the
scenarios of the selected storage backend:

  fs, root, saf   read-write cycle over SFTP and FTP, scp upload and download,
                  key matrix
  safro           read-only cycle over SFTP and FTP, scp download, key matrix

Failed checks never stop the run. They are listed at the end, each tagged
with its scenario, e.g. "[fs  ftp] missing file: testfile".

Example usage:
  ftpprobe run --storage fs
  ftpprobe run storage saf                  # legacy form
  ftpprobe run --storage safro --only sftp,keys
  ftpprobe run --storage root --report out/root.yaml --table
  ftpprobe run --storage fs --skip-forward --host 192.168.1.20`,
	Args: cobra.MaximumNArgs(2),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runStorage, "storage", "", "Storage backend under test (fs, root, saf, safro)")
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "Path to the configuration file (default: ~/.config/ftpprobe/config.yaml)")
	runCmd.Flags().BoolVar(&runSkipForward, "skip-forward", false, "Do not set up adb port forwarding")
	runCmd.Flags().StringVar(&runReportPath, "report", "", "Write the result to a .yaml or .json file")
	runCmd.Flags().BoolVar(&runTable, "table", false, "Print the errors as a table")
	runCmd.Flags().BoolVar(&runFailOnErrors, "fail-on-errors", false, "Exit with status 1 when any check failed")
	runCmd.Flags().StringSliceVar(&runOnly, "only", nil, "Run only the named steps (sftp, ftp, scp-upload, scp-download, keys)")
	runCmd.Flags().StringVar(&runHost, "host", "", "Server host (overrides the configuration)")
	runCmd.Flags().StringVar(&runKeyDir, "key-dir", "", "Directory holding the private keys (overrides the configuration)")
	runCmd.Flags().StringVar(&runTestFile, "test-file", "", "Local reference file to upload (overrides the configuration)")
	runCmd.Flags().StringVar(&runTmpDir, "tmp-dir", "", "Scratch directory for downloads (overrides the configuration)")
	runCmd.Flags().BoolVar(&runRemoveFwd, "remove-forwards", false, "Remove the adb port forwards when the run ends")

	_ = runCmd.RegisterFlagCompletionFunc("storage", completeStorageFlag)
	_ = runCmd.RegisterFlagCompletionFunc("only", completeOnlyFlag)
}

// resolveStorage picks the storage name from --storage or the legacy
// positional "storage <name>" form.
func resolveStorage(flag string, args []string) (string, error) {
	var positional string
	switch len(args) {
	case 0:
	case 1:
		if args[0] == "storage" {
			return "", &scenario.InvalidStorageError{Name: ""}
		}
		return "", fmt.Errorf("unexpected arguments %q: use --storage <name>", args)
	case 2:
		if args[0] != "storage" {
			return "", fmt.Errorf("unexpected arguments %q: use --storage <name>", args)
		}
		positional = args[1]
	default:
		return "", fmt.Errorf("unexpected arguments %q: use --storage <name>", args)
	}

	switch {
	case flag != "" && positional != "" && flag != positional:
		return "", fmt.Errorf("conflicting storage %q and %q", flag, positional)
	case flag != "":
		return flag, nil
	default:
		return positional, nil
	}
}

// applyRunOverrides copies explicitly set flags over the configuration.
func applyRunOverrides(cmd *cobra.Command, cfg *config.DriverConfig) {
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = runHost
	}
	if flags.Changed("key-dir") {
		cfg.KeyDir = runKeyDir
	}
	if flags.Changed("test-file") {
		cfg.TestFile = runTestFile
	}
	if flags.Changed("tmp-dir") {
		cfg.TmpDir = runTmpDir
	}
	if flags.Changed("skip-forward") && runSkipForward {
		cfg.Forward.Enabled = false
	}
	if flags.Changed("fail-on-errors") {
		cfg.FailOnErrors = runFailOnErrors
	}
	if flags.Changed("remove-forwards") {
		cfg.Forward.RemoveOnExit = runRemoveFwd
	}
}

// loadRunConfig loads the configuration file, applies the flags set on cmd
// and validates the result.
func loadRunConfig(cmd *cobra.Command, path string) (config.DriverConfig, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.DriverConfig{}, err
	}
	applyRunOverrides(cmd, &cfg)

	if path == "" {
		if defaultPath, err := config.GetDefaultConfigPath(); err == nil {
			path = defaultPath
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.DriverConfig{}, config.NewConfigurationError(path, "validation", err.Error())
	}
	return cfg, nil
}

// applyLogLevel re-initializes logging with the configured level unless
// --debug was given.
func applyLogLevel(cmd *cobra.Command, cfg config.DriverConfig) {
	if debug || cfg.LogLevel == "" {
		return
	}
	logging.InitForCLI(logging.ParseLevel(cfg.LogLevel), cmd.ErrOrStderr())
}

// renderBases renders and parses the home URLs of storage.
func renderBases(cfg config.DriverConfig, storage scenario.Storage) (scenario.Bases, error) {
	var bases scenario.Bases
	for _, target := range []struct {
		proto protocol.Protocol
		dst   *protocol.BaseURL
	}{
		{protocol.SFTP, &bases.SFTP},
		{protocol.FTP, &bases.FTP},
	} {
		raw, err := cfg.RenderBaseURL(string(storage), target.proto.String())
		if err != nil {
			return bases, err
		}
		base, err := protocol.ParseBaseURL(raw)
		if err != nil {
			return bases, err
		}
		if base.Protocol != target.proto {
			return bases, fmt.Errorf("base URL %s for %s is not a %s URL", raw, storage, target.proto)
		}
		*target.dst = base
	}
	return bases, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	name, err := resolveStorage(runStorage, args)
	if err != nil {
		return err
	}
	storage, err := scenario.ParseStorage(name)
	if err != nil {
		return err
	}
	if err := scenario.ValidateSteps(runOnly); err != nil {
		return err
	}

	cfg, err := loadRunConfig(cmd, runConfigPath)
	if err != nil {
		return err
	}
	applyLogLevel(cmd, cfg)

	bases, err := renderBases(cfg, storage)
	if err != nil {
		return config.NewConfigurationError(runConfigPath, "validation", err.Error())
	}

	fixture, err := verify.DefaultFixture(cfg.TestFile)
	if err != nil {
		return err
	}
	defaultKey := keys.Path(cfg.KeyDir, cfg.DefaultKey)
	if err := keys.RequireFiles(cfg.KeyDir, cfg.DefaultKey); err != nil {
		logging.Warn("Keys", "%v", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(cmd.ErrOrStderr(), "\nReceived interrupt signal, stopping run...")
			cancel()
		case <-ctx.Done():
		}
	}()

	runner := process.NewProcessRunner()

	if cfg.Forward.Enabled {
		fwd := device.NewForwarder(runner, cfg.Clients.ADB)
		fwd.Serial = cfg.Forward.Serial
		ports := []int{cfg.Ports.SFTP, cfg.Ports.FTP, cfg.Ports.FTPPassive}
		if cfg.Forward.RemoveOnExit {
			defer fwd.Remove(context.WithoutCancel(ctx), ports...)
		}
		if err := fwd.Forward(ctx, ports...); err != nil {
			return err
		}
	}

	client := protocol.NewClient(runner, protocol.Options{
		Curl:          cfg.Clients.Curl,
		SCP:           cfg.Clients.SCP,
		CurlExtraArgs: process.Split(cfg.Clients.CurlExtraArgs),
		Host:          cfg.Host,
		SFTPPort:      cfg.Ports.SFTP,
		DefaultKey:    defaultKey,
		UserPass:      cfg.Credentials(),
		TestFile:      cfg.TestFile,
	})
	run := scenario.NewRun(client, fixture, scenario.Settings{
		TmpDir: filepath.Clean(cfg.TmpDir),
		KeyDir: cfg.KeyDir,
	})

	result, runErr := scenario.Execute(ctx, run, scenario.Suite{
		Storage: storage,
		Bases:   bases,
		Only:    runOnly,
	})

	out := cmd.OutOrStdout()
	if runTable {
		report.WriteTable(out, result)
	}
	report.WriteConsole(out, result)

	if runReportPath != "" {
		if err := report.Save(runReportPath, result); err != nil {
			logging.Error("Report", err, "failed to save report")
		}
	}

	if runErr != nil {
		return runErr
	}
	if cfg.FailOnErrors && !result.Passed() {
		return &ChecksFailedError{Count: len(result.Errors)}
	}
	return nil
}

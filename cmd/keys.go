package cmd

import (
	"fmt"
	"os"

	"ftpprobe/internal/config"
	"ftpprobe/internal/keys"
	pstrings "ftpprobe/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	var (
		configPath string
		keyDir     string
	)

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the private keys used for SFTP and SCP authentication",
		Long: `Keys parses every key file of the key matrix and prints its algorithm
and fingerprint. Keys that cannot be read show why, so a broken checkout is
spotted before a run reports authentication failures.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("key-dir") {
				cfg.KeyDir = keyDir
			}
			if _, err := os.Stat(cfg.KeyDir); err != nil {
				return fmt.Errorf("key dir: %w", err)
			}

			infos := keys.Inventory(cfg.KeyDir)
			renderKeyTable(cmd, cfg.KeyDir, infos)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration file (default: ~/.config/ftpprobe/config.yaml)")
	cmd.Flags().StringVar(&keyDir, "key-dir", "", "Directory holding the private keys (overrides the configuration)")
	return cmd
}

func renderKeyTable(cmd *cobra.Command, dir string, infos []keys.Info) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.SetTitle(dir)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("KEY"),
		text.FgHiCyan.Sprint("ALGORITHM"),
		text.FgHiCyan.Sprint("FINGERPRINT"),
		text.FgHiCyan.Sprint("STATUS"),
	})

	for _, info := range infos {
		t.AppendRow(table.Row{info.Name, info.Algorithm, info.Fingerprint, keyStatus(info)})
	}
	t.Render()
}

func keyStatus(info keys.Info) string {
	switch {
	case !info.Exists:
		return text.FgRed.Sprint("missing")
	case info.Encrypted:
		return text.FgYellow.Sprint("encrypted")
	case info.ParseError != "" && info.Bad:
		return text.FgYellow.Sprint("unparsable (expected to be rejected)")
	case info.ParseError != "":
		return text.FgRed.Sprint(pstrings.Truncate("unparsable: "+info.ParseError, pstrings.DefaultCellMaxLen))
	case info.Bad:
		return text.FgYellow.Sprint("ok (expected to be rejected)")
	default:
		return text.FgGreen.Sprint("ok")
	}
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"ftpprobe/internal/process"
	"ftpprobe/internal/release"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Environment variables read by the release command.
const (
	envKeystore      = "PFTPD_KEYSTORE"
	envReleases      = "PFTPD_RELEASES"
	envStorePassword = "PFTPD_STORE_PASSWORD"
	envKeyPassword   = "PFTPD_KEY_PASSWORD"
	envGitHubToken   = "GITHUB_TOKEN"
)

func newReleaseCmd() *cobra.Command {
	var (
		repoDir    string
		dryRun     bool
		githubRepo string
		draft      bool
	)

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Build, commit and tag a release of the app",
		Long: `Release turns the SNAPSHOT version of the gradle build file into a
release: it sets the release version, builds the signed APK, commits and
tags it, then moves on to the next SNAPSHOT with a bumped version code.

The signing keystore comes from $PFTPD_KEYSTORE. Store and key passwords are
prompted for unless $PFTPD_STORE_PASSWORD and $PFTPD_KEY_PASSWORD are set.
When $PFTPD_RELEASES is set the APK is copied there. With --github-repo the
APK is also published as a GitHub release using $GITHUB_TOKEN.

Nothing is pushed. Review the commits and push them yourself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := release.Options{
				RepoDir:     repoDir,
				Keystore:    os.Getenv(envKeystore),
				ReleasesDir: os.Getenv(envReleases),
				DryRun:      dryRun,
				Spinner:     isTerminal(os.Stdout),
			}
			if opts.Keystore == "" && !dryRun {
				return fmt.Errorf("env var %s not set", envKeystore)
			}

			if !dryRun {
				var err error
				in := bufio.NewReader(cmd.InOrStdin())
				if opts.StorePassword, err = password(cmd, in, envStorePassword, "store password: "); err != nil {
					return err
				}
				if opts.KeyPassword, err = password(cmd, in, envKeyPassword, "key password: "); err != nil {
					return err
				}
			}

			var publisher release.Publisher
			if githubRepo != "" {
				gh, err := release.NewGitHubPublisher(ctx, githubRepo, os.Getenv(envGitHubToken))
				if err != nil {
					return err
				}
				gh.Draft = draft
				publisher = gh
			}

			runner := process.NewProcessRunner()
			runner.Dir = repoDir
			_, err := release.NewReleaser(runner, opts, publisher, cmd.OutOrStdout()).Run(ctx)
			return err
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo-dir", ".", "Root of the app checkout")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the versions and commands without changing anything")
	cmd.Flags().StringVar(&githubRepo, "github-repo", "", "Publish the APK as a release of owner/name on GitHub")
	cmd.Flags().BoolVar(&draft, "draft", false, "Create the GitHub release as a draft")
	return cmd
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// password returns the value of env or prompts for it. On a terminal the
// input is not echoed.
func password(cmd *cobra.Command, in *bufio.Reader, env, prompt string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return v, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	if f, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(f) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

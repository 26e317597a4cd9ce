package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"ftpprobe/internal/process"
	"ftpprobe/pkg/logging"

	"github.com/briandowns/spinner"
)

// Defaults of the app project layout.
const (
	DefaultBuildFile = "primitiveFTPd/build.gradle"
	DefaultAPK       = "primitiveFTPd/build/outputs/apk/release/primitiveFTPd-release.apk"
	DefaultKeyAlias  = "prim fptd sign key"
)

// Options configures a release.
type Options struct {
	// RepoDir is the root of the app checkout. Commands run there.
	RepoDir string
	// BuildFile and APK are relative to RepoDir.
	BuildFile string
	APK       string

	Keystore      string
	KeyAlias      string
	StorePassword string
	KeyPassword   string

	// ReleasesDir receives a copy of the APK when set.
	ReleasesDir string

	Gradle string
	Git    string

	// DryRun computes the versions and lists the commands without running
	// or writing anything.
	DryRun bool
	// Spinner shows progress while gradle builds.
	Spinner bool
}

// Outcome describes what a release did.
type Outcome struct {
	Versions Versions `json:"versions" yaml:"versions"`
	// Commands are the commands run, or planned in a dry run. Passwords
	// are masked.
	Commands []string `json:"commands" yaml:"commands"`
	// Artifact is the copied APK, empty when no releases dir was given.
	Artifact string `json:"artifact,omitempty" yaml:"artifact,omitempty"`
	// ReleaseURL is set when the release was published.
	ReleaseURL string `json:"releaseUrl,omitempty" yaml:"releaseUrl,omitempty"`
}

// Releaser runs the release steps in order. Any failure stops it; nothing
// is rolled back.
type Releaser struct {
	runner    process.Runner
	opts      Options
	publisher Publisher
	out       io.Writer
}

// NewReleaser creates a releaser. publisher may be nil.
func NewReleaser(runner process.Runner, opts Options, publisher Publisher, out io.Writer) *Releaser {
	if opts.BuildFile == "" {
		opts.BuildFile = DefaultBuildFile
	}
	if opts.APK == "" {
		opts.APK = DefaultAPK
	}
	if opts.KeyAlias == "" {
		opts.KeyAlias = DefaultKeyAlias
	}
	if opts.Gradle == "" {
		opts.Gradle = "./gradlew"
	}
	if opts.Git == "" {
		opts.Git = "git"
	}
	return &Releaser{runner: runner, opts: opts, publisher: publisher, out: out}
}

// BuildCommand returns the gradle invocation producing the signed APK.
func (r *Releaser) BuildCommand() process.Command {
	o := r.opts
	return process.NewCommand(o.Gradle,
		"clean",
		"assembleRelease",
		"-Pandroid.injected.signing.store.file="+o.Keystore,
		"-Pandroid.injected.signing.key.alias="+o.KeyAlias,
		"-Pandroid.injected.signing.store.password="+o.StorePassword,
		"-Pandroid.injected.signing.key.password="+o.KeyPassword,
	)
}

// masked renders cmd for logs and outcomes with the passwords replaced.
func (r *Releaser) masked(cmd process.Command) string {
	out := process.Command{Name: cmd.Name, Args: make([]string, len(cmd.Args))}
	for i, arg := range cmd.Args {
		switch arg {
		case "-Pandroid.injected.signing.store.password=" + r.opts.StorePassword:
			arg = "-Pandroid.injected.signing.store.password=***"
		case "-Pandroid.injected.signing.key.password=" + r.opts.KeyPassword:
			arg = "-Pandroid.injected.signing.key.password=***"
		}
		out.Args[i] = arg
	}
	return out.String()
}

func (r *Releaser) git(args ...string) process.Command {
	return process.NewCommand(r.opts.Git, args...)
}

// Plan reads the build file and returns the versions and the ordered
// commands of the release.
func (r *Releaser) Plan() (*BuildFile, Versions, []process.Command, error) {
	bf, err := ReadBuildFile(filepath.Join(r.opts.RepoDir, r.opts.BuildFile))
	if err != nil {
		return nil, Versions{}, nil, err
	}
	v, err := ComputeVersions(bf.VersionCode, bf.VersionName)
	if err != nil {
		return nil, Versions{}, nil, err
	}

	cmds := []process.Command{
		r.BuildCommand(),
		r.git("add", r.opts.BuildFile),
		r.git("commit", "-m", "set version to "+v.Release),
		r.git("tag", "-a", v.Tag(), "-m", v.Tag()),
		r.git("add", r.opts.BuildFile),
		r.git("commit", "-m", fmt.Sprintf("set version to %s and code to %d", v.NextSnapshot, v.NewCode)),
	}
	return bf, v, cmds, nil
}

// Run performs the release.
func (r *Releaser) Run(ctx context.Context) (*Outcome, error) {
	if r.opts.Keystore == "" && !r.opts.DryRun {
		return nil, fmt.Errorf("no keystore given: set PFTPD_KEYSTORE")
	}

	bf, v, cmds, err := r.Plan()
	if err != nil {
		return nil, err
	}
	outcome := &Outcome{Versions: v}
	for _, cmd := range cmds {
		outcome.Commands = append(outcome.Commands, r.masked(cmd))
	}

	fmt.Fprintf(r.out, "oldVersionCode: %d\nnewVersionCode: %d\n", v.OldCode, v.NewCode)
	fmt.Fprintf(r.out, "oldSnapshotVersion: %s\nreleaseVersion: %s\nnewSnapshotVersion: %s\n\n", v.Snapshot, v.Release, v.NextSnapshot)

	if r.opts.DryRun {
		for _, c := range outcome.Commands {
			fmt.Fprintf(r.out, "would run: %s\n", c)
		}
		return outcome, nil
	}

	build, releaseCommit, nextCommit := cmds[0], cmds[1:4], cmds[4:]

	fmt.Fprintln(r.out, "writing release version in file")
	if err := r.writeBuildFile(bf, v.Release, v.OldCode); err != nil {
		return outcome, err
	}

	fmt.Fprintln(r.out, "running build")
	if err := r.runBuild(ctx, build); err != nil {
		return outcome, err
	}

	fmt.Fprintf(r.out, "committing and tagging %s\n", v.Tag())
	if err := r.runAll(ctx, releaseCommit); err != nil {
		return outcome, err
	}

	fmt.Fprintln(r.out, "writing new snapshot version in file")
	if err := r.writeBuildFile(bf, v.NextSnapshot, v.NewCode); err != nil {
		return outcome, err
	}
	if err := r.runAll(ctx, nextCommit); err != nil {
		return outcome, err
	}

	apk := filepath.Join(r.opts.RepoDir, r.opts.APK)
	if r.opts.ReleasesDir != "" {
		dest := filepath.Join(r.opts.ReleasesDir, fmt.Sprintf("primitiveFTPd-%s.apk", v.Release))
		fmt.Fprintf(r.out, "copy to releases dir: %s\n", dest)
		if err := copyFile(apk, dest); err != nil {
			return outcome, err
		}
		outcome.Artifact = dest
		apk = dest
	} else {
		fmt.Fprintln(r.out, "releases dir not set, no copy")
	}

	if r.publisher != nil {
		url, err := r.publisher.Publish(ctx, v.Tag(), v.Tag(), apk)
		if err != nil {
			return outcome, err
		}
		outcome.ReleaseURL = url
		fmt.Fprintf(r.out, "published %s\n", url)
	}

	fmt.Fprintln(r.out, "\nyou should push !!!")
	return outcome, nil
}

func (r *Releaser) writeBuildFile(bf *BuildFile, name string, code int) error {
	logging.Info("Release", "setting version %s (code %d) in %s", name, code, bf.Path)
	if err := os.WriteFile(bf.Path, []byte(bf.WithVersion(name, code)), 0644); err != nil {
		return fmt.Errorf("failed to write build file: %w", err)
	}
	return nil
}

func (r *Releaser) runBuild(ctx context.Context, cmd process.Command) error {
	logging.Debug("Release", "build command: %s", r.masked(cmd))
	var s *spinner.Spinner
	if r.opts.Spinner {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Building release..."
		s.Start()
	}
	_, err := r.runner.Run(ctx, cmd, true)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		// ExecutionError text carries the command line, passwords included
		var execErr *process.ExecutionError
		if errors.As(err, &execErr) {
			return fmt.Errorf("build failed with exit code %d: %s", execErr.ExitCode, r.masked(cmd))
		}
		return fmt.Errorf("build failed: %w", err)
	}
	return nil
}

func (r *Releaser) runAll(ctx context.Context, cmds []process.Command) error {
	for _, cmd := range cmds {
		if _, err := r.runner.Run(ctx, cmd, true); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create releases dir: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy artifact: %w", err)
	}
	return out.Close()
}

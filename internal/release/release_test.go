package release

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"ftpprobe/internal/process"
	"ftpprobe/internal/process/processtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	tag, name, asset string
}

func (p *fakePublisher) Publish(_ context.Context, tag, name, assetPath string) (string, error) {
	p.tag, p.name, p.asset = tag, name, assetPath
	return "https://github.com/example/prim-ftpd/releases/tag/" + tag, nil
}

func newRepo(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "primitiveFTPd"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(repo, DefaultBuildFile), []byte(gradleSample), 0644))
	return repo
}

func newOptions(repo string) Options {
	return Options{
		RepoDir:       repo,
		Keystore:      "/secure/release.jks",
		StorePassword: "store-secret",
		KeyPassword:   "key-secret",
	}
}

func TestReleaser_Run(t *testing.T) {
	repo := newRepo(t)
	releases := filepath.Join(t.TempDir(), "releases")
	apk := filepath.Join(repo, DefaultAPK)

	var buildFileDuringBuild string
	rec := processtest.NewRecorder().OnFunc(processtest.Name("./gradlew"), func(process.Command) processtest.Response {
		data, _ := os.ReadFile(filepath.Join(repo, DefaultBuildFile))
		buildFileDuringBuild = string(data)
		_ = os.MkdirAll(filepath.Dir(apk), 0755)
		_ = os.WriteFile(apk, []byte("apk"), 0644)
		return processtest.Response{}
	})

	opts := newOptions(repo)
	opts.ReleasesDir = releases
	pub := &fakePublisher{}
	var out bytes.Buffer

	outcome, err := NewReleaser(rec, opts, pub, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		`./gradlew clean assembleRelease -Pandroid.injected.signing.store.file=/secure/release.jks "-Pandroid.injected.signing.key.alias=prim fptd sign key" -Pandroid.injected.signing.store.password=store-secret -Pandroid.injected.signing.key.password=key-secret`,
		"git add primitiveFTPd/build.gradle",
		`git commit -m "set version to 7.2"`,
		"git tag -a prim-ftpd-7.2 -m prim-ftpd-7.2",
		"git add primitiveFTPd/build.gradle",
		`git commit -m "set version to 7.3-SNAPSHOT and code to 81"`,
	}, rec.Lines())
	for _, c := range rec.Calls() {
		assert.True(t, c.Check)
	}

	assert.Contains(t, buildFileDuringBuild, `versionName "7.2"`)
	assert.Contains(t, buildFileDuringBuild, "versionCode 80")

	final, err := os.ReadFile(filepath.Join(repo, DefaultBuildFile))
	require.NoError(t, err)
	assert.Contains(t, string(final), `versionName "7.3-SNAPSHOT"`)
	assert.Contains(t, string(final), "versionCode 81")

	assert.Equal(t, filepath.Join(releases, "primitiveFTPd-7.2.apk"), outcome.Artifact)
	assert.FileExists(t, outcome.Artifact)
	assert.Equal(t, "prim-ftpd-7.2", pub.tag)
	assert.Equal(t, outcome.Artifact, pub.asset)
	assert.Contains(t, outcome.ReleaseURL, "prim-ftpd-7.2")

	for _, c := range outcome.Commands {
		assert.NotContains(t, c, "secret")
	}
	assert.Contains(t, out.String(), "releaseVersion: 7.2")
}

func TestReleaser_DryRun(t *testing.T) {
	repo := newRepo(t)
	rec := processtest.NewRecorder()
	opts := newOptions(repo)
	opts.DryRun = true
	var out bytes.Buffer

	outcome, err := NewReleaser(rec, opts, nil, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, rec.Calls())
	assert.Len(t, outcome.Commands, 6)
	assert.Equal(t, "7.3-SNAPSHOT", outcome.Versions.NextSnapshot)
	assert.Contains(t, out.String(), "would run: git tag -a prim-ftpd-7.2 -m prim-ftpd-7.2")
	assert.NotContains(t, out.String(), "store-secret")

	data, err := os.ReadFile(filepath.Join(repo, DefaultBuildFile))
	require.NoError(t, err)
	assert.Equal(t, gradleSample, string(data))
}

func TestReleaser_BuildFailureStops(t *testing.T) {
	repo := newRepo(t)
	execErr := &process.ExecutionError{Command: process.NewCommand("./gradlew", "-Pandroid.injected.signing.store.password=store-secret"), ExitCode: 1, Stderr: "FAILURE"}
	rec := processtest.NewRecorder().On(processtest.Name("./gradlew"), processtest.Response{Err: execErr})

	_, err := NewReleaser(rec, newOptions(repo), nil, &bytes.Buffer{}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit code 1")
	assert.NotContains(t, err.Error(), "secret")
	assert.Len(t, rec.Calls(), 1)

	data, err := os.ReadFile(filepath.Join(repo, DefaultBuildFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `versionName "7.2"`)
}

func TestReleaser_RequiresKeystore(t *testing.T) {
	opts := newOptions(newRepo(t))
	opts.Keystore = ""

	_, err := NewReleaser(processtest.NewRecorder(), opts, nil, &bytes.Buffer{}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PFTPD_KEYSTORE")
}

func TestNewGitHubPublisher_Validation(t *testing.T) {
	_, err := NewGitHubPublisher(context.Background(), "no-slash", "token")
	assert.Error(t, err)
	_, err = NewGitHubPublisher(context.Background(), "owner/repo", "")
	assert.Error(t, err)
	p, err := NewGitHubPublisher(context.Background(), "owner/repo", "token")
	require.NoError(t, err)
	assert.Equal(t, "owner", p.owner)
	assert.Equal(t, "repo", p.repo)
}

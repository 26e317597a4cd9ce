package release

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/Masterminds/semver/v3"
)

const snapshotSuffix = "SNAPSHOT"

var (
	versionCodeRe = regexp.MustCompile(`versionCode (\d+)`)
	versionNameRe = regexp.MustCompile(`versionName "([^"]*)"`)
)

// BuildFile is the gradle build file holding the app version.
type BuildFile struct {
	Path        string
	Content     string
	VersionCode int
	VersionName string
}

// ReadBuildFile reads and parses the gradle file at path.
func ReadBuildFile(path string) (*BuildFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build file: %w", err)
	}
	bf, err := ParseBuildFile(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	bf.Path = path
	return bf, nil
}

// ParseBuildFile finds the first versionCode and versionName in content.
func ParseBuildFile(content string) (*BuildFile, error) {
	code := versionCodeRe.FindStringSubmatch(content)
	if code == nil {
		return nil, fmt.Errorf("no versionCode found")
	}
	name := versionNameRe.FindStringSubmatch(content)
	if name == nil {
		return nil, fmt.Errorf("no versionName found")
	}
	n, err := strconv.Atoi(code[1])
	if err != nil {
		return nil, fmt.Errorf("invalid versionCode %q: %w", code[1], err)
	}
	return &BuildFile{Content: content, VersionCode: n, VersionName: name[1]}, nil
}

// WithVersion returns the content with versionName and versionCode replaced.
func (b *BuildFile) WithVersion(name string, code int) string {
	out := versionNameRe.ReplaceAllLiteralString(b.Content, fmt.Sprintf(`versionName "%s"`, name))
	return versionCodeRe.ReplaceAllLiteralString(out, fmt.Sprintf("versionCode %d", code))
}

// Versions are the version names and codes of one release.
type Versions struct {
	OldCode      int    `json:"oldCode" yaml:"oldCode"`
	NewCode      int    `json:"newCode" yaml:"newCode"`
	Snapshot     string `json:"snapshot" yaml:"snapshot"`
	Release      string `json:"release" yaml:"release"`
	NextSnapshot string `json:"nextSnapshot" yaml:"nextSnapshot"`
}

// Tag returns the git tag of the release.
func (v Versions) Tag() string {
	return "prim-ftpd-" + v.Release
}

// ComputeVersions derives the release from the current snapshot, e.g.
// 7.2-SNAPSHOT with code 80 releases 7.2 and moves on to 7.3-SNAPSHOT with
// code 81.
func ComputeVersions(code int, snapshot string) (Versions, error) {
	v, err := semver.NewVersion(snapshot)
	if err != nil {
		return Versions{}, fmt.Errorf("invalid versionName %q: %w", snapshot, err)
	}
	if v.Prerelease() != snapshotSuffix {
		return Versions{}, fmt.Errorf("versionName %q is not a %s version", snapshot, snapshotSuffix)
	}

	next := v.IncMinor()
	return Versions{
		OldCode:      code,
		NewCode:      code + 1,
		Snapshot:     snapshot,
		Release:      shortVersion(v),
		NextSnapshot: shortVersion(&next) + "-" + snapshotSuffix,
	}, nil
}

// shortVersion prints major.minor, adding the patch level only when set.
func shortVersion(v *semver.Version) string {
	if v.Patch() != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
	}
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

package verify

import (
	"fmt"
	"os"
)

// Fixture names the files and directories the scenarios expect on the server.
type Fixture struct {
	// HomeEntries always exist in the home directory.
	HomeEntries []string
	// PreExistingDir is a directory provisioned on the server, containing
	// SubDir/FileName for the read-only scenarios.
	PreExistingDir string

	NewDir        string
	NewDirRenamed string
	SubDir        string
	SubDirRenamed string

	FileName        string
	FileNameRenamed string
	// FileSize is the byte size of the local reference file.
	FileSize int64
}

// DefaultFixture returns the names used by the stock test setup, with the
// size taken from the reference file at testFile.
func DefaultFixture(testFile string) (Fixture, error) {
	info, err := os.Stat(testFile)
	if err != nil {
		return Fixture{}, fmt.Errorf("reference test file: %w", err)
	}
	if info.IsDir() {
		return Fixture{}, fmt.Errorf("reference test file %s is a directory", testFile)
	}

	return Fixture{
		HomeEntries:     []string{"Android", "DCIM", "test-dir"},
		PreExistingDir:  "test-dir",
		NewDir:          "test-dir-auto",
		NewDirRenamed:   "test-dir-auto-renamed",
		SubDir:          "sub-dir",
		SubDirRenamed:   "sub-dir-renamed",
		FileName:        "testfile",
		FileNameRenamed: "testfile-renamed",
		FileSize:        info.Size(),
	}, nil
}

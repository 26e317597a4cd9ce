package verify

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"ftpprobe/pkg/logging"
)

// HomeState describes what a home listing should show.
type HomeState struct {
	NewDirPresent bool
	DirRenamed    bool
}

// Level1State describes the listing of the directory created by the cycle.
type Level1State struct {
	SubDirPresent bool
	SubDirRenamed bool
}

// Level2State describes the listing of the nested directory holding the upload.
type Level2State struct {
	FilePresent bool
	AfterRename bool
}

// HomeListing checks a home directory listing: the fixed entries are
// present, and the created directory appears only when state says so.
func (f Fixture) HomeListing(errs *Errors, tag, text string, state HomeState) {
	logging.Debug("Verify", "checking home listing\n%s", text)
	missing := "missing dir in home: "
	present := "present dir in home: "

	for _, entry := range f.HomeEntries {
		errs.Contains(tag, text, entry, missing)
	}

	if state.NewDirPresent {
		name := f.NewDir
		if state.DirRenamed {
			name = f.NewDirRenamed
		}
		errs.Contains(tag, text, name, missing)
	} else {
		errs.NotContains(tag, text, f.NewDir, present)
		errs.NotContains(tag, text, f.NewDirRenamed, present)
	}
	errs.NotContains(tag, text, f.SubDir, present)
}

// ListingLevel1 checks the listing of the created (or pre-existing) directory.
func (f Fixture) ListingLevel1(errs *Errors, tag, text string, state Level1State) {
	logging.Debug("Verify", "checking listing (level 1)\n%s", text)

	if state.SubDirPresent {
		name := f.SubDir
		if state.SubDirRenamed {
			name = f.SubDirRenamed
		}
		errs.Contains(tag, text, name, "missing dir: ")
		return
	}

	errs.NotContains(tag, text, f.SubDir, "present dir: ")
	errs.NotContains(tag, text, f.SubDirRenamed, "present dir: ")
}

// ListingLevel2 checks the listing of the nested directory. When the file is
// expected, one line must read "<perms...> <size> <Mon dd hh:mm> <name>".
func (f Fixture) ListingLevel2(errs *Errors, tag, text string, state Level2State) {
	logging.Debug("Verify", "checking listing (level 2)\n%s", text)

	if !state.FilePresent {
		errs.NotContains(tag, text, f.FileName, "present file: ")
		errs.NotContains(tag, text, f.FileNameRenamed, "present file: ")
		return
	}

	name := f.FileName
	if state.AfterRename {
		name = f.FileNameRenamed
	}
	errs.Contains(tag, text, name, "missing file: ")
	errs.Matches(tag, text, f.SizePattern(name), "wrong upload filesize: ")
}

// SizePattern returns the expression matching the listing line of name with
// the reference size. Lines before it are skipped.
func (f Fixture) SizePattern(name string) string {
	return fmt.Sprintf(`(?:.*\n)*(.*) %d (... .. ..:..) %s`, f.FileSize, regexp.QuoteMeta(name))
}

// DownloadedFile checks that dir/filename exists with the reference size.
func (f Fixture) DownloadedFile(errs *Errors, tag, dir, filename string) {
	path := filepath.Join(dir, filename)
	logging.Debug("Verify", "checking downloaded file: %s", path)

	info, err := os.Stat(path)
	if err != nil {
		errs.Append(tag, "missing local file: "+filename)
		return
	}
	if info.Size() != f.FileSize {
		errs.Append(tag, fmt.Sprintf("bad local filesize: %s, size: %d", filename, info.Size()))
	}
}

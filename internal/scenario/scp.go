package scenario

import (
	"context"
	"path/filepath"

	"ftpprobe/internal/protocol"
	"ftpprobe/internal/verify"
)

// SCPUpload prepares a nested directory over SFTP at base, copies the
// reference file into it with scp, checks the listing and removes
// everything again.
func (r *Run) SCPUpload(ctx context.Context, base protocol.BaseURL, tag string) error {
	banner("scp upload " + tag)
	f := r.fixture
	dirs := []string{f.NewDir, f.SubDir}

	if _, err := r.client.CreateDir(ctx, base, f.NewDir); err != nil {
		if err := r.observe(ctx, tag, "create dir", err); err != nil {
			return err
		}
	}
	if _, err := r.client.CreateSubDir(ctx, base, dirs); err != nil {
		if err := r.observe(ctx, tag, "create sub dir", err); err != nil {
			return err
		}
	}

	if _, err := r.client.SCPUpload(ctx, protocol.JoinPath(dirs)); err != nil {
		if err := r.observe(ctx, tag, "scp upload", err); err != nil {
			return err
		}
	}

	out, err := r.list(ctx, tag, base.Dir(dirs...), base.Protocol)
	if err != nil {
		return err
	}
	f.ListingLevel2(r.errs, tag, out, verify.Level2State{FilePresent: true})

	// cleanup
	if _, err := r.client.RemoveFile(ctx, base, dirs, f.FileName); err != nil {
		if err := r.observe(ctx, tag, "remove file", err); err != nil {
			return err
		}
	}
	if _, err := r.client.RemoveSubDir(ctx, base, dirs); err != nil {
		if err := r.observe(ctx, tag, "remove sub dir", err); err != nil {
			return err
		}
	}
	if _, err := r.client.RemoveDir(ctx, base, f.NewDir); err != nil {
		if err := r.observe(ctx, tag, "remove dir", err); err != nil {
			return err
		}
	}
	return nil
}

// SCPDownload copies the pre-provisioned file into a fresh temp dir with
// scp and checks its size.
func (r *Run) SCPDownload(ctx context.Context, tag string) error {
	banner("scp download " + tag)
	if err := r.resetTmpDir(); err != nil {
		return err
	}

	f := r.fixture
	remote := protocol.JoinPath([]string{f.PreExistingDir, f.SubDir, f.FileName})
	local := filepath.Join(r.settings.TmpDir, f.FileName)

	_, err := r.client.SCPDownload(ctx, remote, local)
	if err := r.observe(ctx, tag, "scp download", err); err != nil {
		return err
	}
	f.DownloadedFile(r.errs, tag, r.settings.TmpDir, f.FileName)
	return nil
}

package scenario

import (
	"context"

	"ftpprobe/internal/protocol"
	"ftpprobe/internal/verify"
)

// Cycle runs the read-write lifecycle against base: create a directory and
// a nested one, upload, download, rename the file and both directories,
// then delete everything again, checking the listing after each step.
//
// When the first home listing already fails its check the server is not in
// the expected state and the cycle stops there.
func (r *Run) Cycle(ctx context.Context, base protocol.BaseURL, tag string) error {
	banner("cycle " + tag)
	if err := r.resetTmpDir(); err != nil {
		return err
	}

	proto := base.Protocol
	f := r.fixture
	errs := r.errs
	start := errs.Len()

	out, err := r.list(ctx, tag, base.String(), proto)
	if err != nil {
		return err
	}
	f.HomeListing(errs, tag, out, verify.HomeState{})
	if len(errs.Since(start)) > 0 {
		return nil
	}

	// create
	out, err = r.client.CreateDir(ctx, base, f.NewDir)
	if err := r.observe(ctx, tag, "create dir", err); err != nil {
		return err
	}
	f.HomeListing(errs, tag, out, verify.HomeState{NewDirPresent: true})

	if _, err := r.client.CreateSubDir(ctx, base, []string{f.NewDir, f.SubDir}); err != nil {
		if err := r.observe(ctx, tag, "create sub dir", err); err != nil {
			return err
		}
	}
	level1 := base.Dir(f.NewDir)
	if out, err = r.list(ctx, tag, level1, proto); err != nil {
		return err
	}
	f.ListingLevel1(errs, tag, out, verify.Level1State{SubDirPresent: true})

	// upload and download
	level2 := base.Dir(f.NewDir, f.SubDir)
	if _, err := r.client.Upload(ctx, level2, proto); err != nil {
		if err := r.observe(ctx, tag, "upload", err); err != nil {
			return err
		}
	}
	if out, err = r.list(ctx, tag, level2, proto); err != nil {
		return err
	}
	f.ListingLevel2(errs, tag, out, verify.Level2State{FilePresent: true})

	if err := r.download(ctx, tag, level2, f.FileName, proto); err != nil {
		return err
	}

	// rename file
	if _, err := r.client.Rename(ctx, base, []string{f.NewDir, f.SubDir}, f.FileName, f.FileNameRenamed); err != nil {
		if err := r.observe(ctx, tag, "rename file", err); err != nil {
			return err
		}
	}
	if out, err = r.list(ctx, tag, level2, proto); err != nil {
		return err
	}
	f.ListingLevel2(errs, tag, out, verify.Level2State{FilePresent: true, AfterRename: true})

	if err := r.download(ctx, tag, level2, f.FileNameRenamed, proto); err != nil {
		return err
	}

	// rename dirs
	if _, err := r.client.Rename(ctx, base, []string{f.NewDir}, f.SubDir, f.SubDirRenamed); err != nil {
		if err := r.observe(ctx, tag, "rename sub dir", err); err != nil {
			return err
		}
	}
	if out, err = r.list(ctx, tag, level1, proto); err != nil {
		return err
	}
	f.ListingLevel1(errs, tag, out, verify.Level1State{SubDirPresent: true, SubDirRenamed: true})

	out, err = r.client.Rename(ctx, base, nil, f.NewDir, f.NewDirRenamed)
	if err := r.observe(ctx, tag, "rename dir", err); err != nil {
		return err
	}
	f.HomeListing(errs, tag, out, verify.HomeState{NewDirPresent: true, DirRenamed: true})

	// delete
	renamedLevel1 := base.Dir(f.NewDirRenamed)
	renamedLevel2 := base.Dir(f.NewDirRenamed, f.SubDirRenamed)
	renamedDirs := []string{f.NewDirRenamed, f.SubDirRenamed}

	if _, err := r.client.RemoveFile(ctx, base, renamedDirs, f.FileNameRenamed); err != nil {
		if err := r.observe(ctx, tag, "remove file", err); err != nil {
			return err
		}
	}
	if out, err = r.list(ctx, tag, renamedLevel2, proto); err != nil {
		return err
	}
	f.ListingLevel2(errs, tag, out, verify.Level2State{})

	if _, err := r.client.RemoveSubDir(ctx, base, renamedDirs); err != nil {
		if err := r.observe(ctx, tag, "remove sub dir", err); err != nil {
			return err
		}
	}
	if out, err = r.list(ctx, tag, renamedLevel1, proto); err != nil {
		return err
	}
	f.ListingLevel1(errs, tag, out, verify.Level1State{})

	out, err = r.client.RemoveDir(ctx, base, f.NewDirRenamed)
	if err := r.observe(ctx, tag, "remove dir", err); err != nil {
		return err
	}
	f.HomeListing(errs, tag, out, verify.HomeState{})
	return nil
}

// ReadOnlyActions is the part of the client a read-only cycle may use.
type ReadOnlyActions interface {
	List(ctx context.Context, url string, proto protocol.Protocol) (string, error)
	Download(ctx context.Context, dirURL, filename, destDir string, proto protocol.Protocol) (string, error)
}

// ReadOnlyCycle lists the pre-provisioned directory tree below base and
// downloads its file. Only listing and download are reachable from here.
func (r *Run) ReadOnlyCycle(ctx context.Context, base protocol.BaseURL, tag string) error {
	banner("read-only cycle " + tag)
	if err := r.resetTmpDir(); err != nil {
		return err
	}

	var client ReadOnlyActions = r.client
	proto := base.Protocol
	f := r.fixture
	errs := r.errs
	start := errs.Len()

	listing := func(url string) (string, error) {
		out, err := client.List(ctx, url, proto)
		return out, r.observe(ctx, tag, "listing "+url, err)
	}

	out, err := listing(base.String())
	if err != nil {
		return err
	}
	f.HomeListing(errs, tag, out, verify.HomeState{})
	if len(errs.Since(start)) > 0 {
		return nil
	}

	if out, err = listing(base.Dir(f.PreExistingDir)); err != nil {
		return err
	}
	f.ListingLevel1(errs, tag, out, verify.Level1State{SubDirPresent: true})

	level2 := base.Dir(f.PreExistingDir, f.SubDir)
	if out, err = listing(level2); err != nil {
		return err
	}
	f.ListingLevel2(errs, tag, out, verify.Level2State{FilePresent: true})

	_, err = client.Download(ctx, level2, f.FileName, r.settings.TmpDir, proto)
	if err := r.observe(ctx, tag, "download "+f.FileName, err); err != nil {
		return err
	}
	f.DownloadedFile(errs, tag, r.settings.TmpDir, f.FileName)
	return nil
}

// download fetches filename from dirURL into the temp dir and checks its size.
func (r *Run) download(ctx context.Context, tag, dirURL, filename string, proto protocol.Protocol) error {
	_, err := r.client.Download(ctx, dirURL, filename, r.settings.TmpDir, proto)
	if err := r.observe(ctx, tag, "download "+filename, err); err != nil {
		return err
	}
	r.fixture.DownloadedFile(r.errs, tag, r.settings.TmpDir, filename)
	return nil
}

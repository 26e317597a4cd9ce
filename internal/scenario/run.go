package scenario

import (
	"context"
	"fmt"
	"os"

	"ftpprobe/internal/protocol"
	"ftpprobe/internal/verify"
	"ftpprobe/pkg/logging"
)

// Settings holds the local paths a run needs.
type Settings struct {
	// TmpDir receives downloads. It is removed and recreated by every
	// scenario that downloads.
	TmpDir string
	// KeyDir holds the private keys used by the key matrix.
	KeyDir string
}

// Run is the context of one driver invocation: the client, the expected
// fixture and the error list every check appends to.
type Run struct {
	client   *protocol.Client
	fixture  verify.Fixture
	settings Settings
	errs     *verify.Errors
}

// NewRun creates a run with an empty error list.
func NewRun(client *protocol.Client, fixture verify.Fixture, settings Settings) *Run {
	return &Run{
		client:   client,
		fixture:  fixture,
		settings: settings,
		errs:     &verify.Errors{},
	}
}

// Errors returns the error list accumulated so far.
func (r *Run) Errors() *verify.Errors {
	return r.errs
}

// resetTmpDir removes the temp directory with everything in it and creates
// it again empty.
func (r *Run) resetTmpDir() error {
	dir := r.settings.TmpDir
	if dir == "" || dir == "/" {
		return fmt.Errorf("refusing to reset temp dir %q", dir)
	}
	logging.Debug("Scenario", "resetting temp dir %s", dir)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove temp dir %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create temp dir %s: %w", dir, err)
	}
	return nil
}

// observe turns a failed client call into an entry of the error list so the
// run goes on. An interrupted context is returned instead.
func (r *Run) observe(ctx context.Context, tag, action string, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	logging.Warn("Scenario", "%s %s failed: %v", tag, action, err)
	r.errs.Append(tag, fmt.Sprintf("%s failed: %v", action, err))
	return nil
}

// list fetches a listing with the default credentials.
func (r *Run) list(ctx context.Context, tag, url string, proto protocol.Protocol) (string, error) {
	out, err := r.client.List(ctx, url, proto)
	return out, r.observe(ctx, tag, "listing "+url, err)
}

func banner(title string) {
	logging.Info("Scenario", "***** %s *****", title)
}

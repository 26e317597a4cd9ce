package scenario

import (
	"context"

	"ftpprobe/internal/keys"
	"ftpprobe/internal/protocol"
	"ftpprobe/internal/verify"
)

// KeyCase is one entry of the key matrix.
type KeyCase struct {
	Tag string
	// Key is the key file name below the key dir. Empty means password
	// authentication.
	Key string
	// Rejected marks cases the server must refuse.
	Rejected bool
}

// KeyMatrix lists the authentication cases run against the SFTP home.
// The default key is exercised by every other scenario and is not repeated.
var KeyMatrix = []KeyCase{
	{Tag: "[key dsa]", Key: keys.DSA},
	{Tag: "[key rsa]", Key: keys.RSA},
	{Tag: "[key ecdsa]", Key: keys.ECDSA},
	{Tag: "[key ecdsa 384]", Key: keys.ECDSA384},
	{Tag: "[key bad rsa]", Key: keys.RSABad, Rejected: true},
	{Tag: "[key bad ed25519]", Key: keys.Ed25519Bad, Rejected: true},
	{Tag: "[sftp password]"},
}

// Keys lists the SFTP home at base once per key matrix case. Accepted
// credentials must produce the normal home listing; rejected keys must
// produce no output at all.
func (r *Run) Keys(ctx context.Context, base protocol.BaseURL) error {
	banner("keys")
	for _, kc := range KeyMatrix {
		if err := r.keyCase(ctx, base, kc); err != nil {
			return err
		}
	}
	return nil
}

func (r *Run) keyCase(ctx context.Context, base protocol.BaseURL, kc KeyCase) error {
	creds := protocol.Credentials{UserPass: r.client.Options().UserPass}
	if kc.Key != "" {
		creds = protocol.Credentials{KeyFile: keys.Path(r.settings.KeyDir, kc.Key)}
	}

	out, err := r.client.ListWith(ctx, base.String(), protocol.SFTP, creds, !kc.Rejected)
	if err := r.observe(ctx, kc.Tag, "listing with "+describeCredentials(kc), err); err != nil {
		return err
	}

	if kc.Rejected {
		r.errs.ExpectEmpty(kc.Tag, out)
		return nil
	}
	r.fixture.HomeListing(r.errs, kc.Tag, out, verify.HomeState{})
	return nil
}

func describeCredentials(kc KeyCase) string {
	if kc.Key == "" {
		return "password"
	}
	return kc.Key
}

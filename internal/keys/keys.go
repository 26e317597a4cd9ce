package keys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ftpprobe/pkg/logging"

	"golang.org/x/crypto/ssh"
)

// Key file names below the key directory.
const (
	RSA        = "rsa.key"
	DSA        = "dsa.key"
	ECDSA      = "ecdsa.key"
	ECDSA384   = "ecdsa.key.384"
	ECDSA521   = "ecdsa.key.521"
	Ed25519    = "ed25519.key"
	RSABad     = "rsa.bad.key"
	Ed25519Bad = "ed25519.bad.key"
)

// All lists every key the test setup ships, valid ones first.
var All = []string{RSA, DSA, ECDSA, ECDSA384, ECDSA521, Ed25519, RSABad, Ed25519Bad}

// IsBad reports whether name is one of the keys the server must reject.
func IsBad(name string) bool {
	return name == RSABad || name == Ed25519Bad
}

// Info describes one key file.
type Info struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	// Exists is false when the file is missing.
	Exists bool `json:"exists" yaml:"exists"`
	// Algorithm is the public key algorithm when the key parsed, e.g. ssh-ed25519.
	Algorithm string `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	// Fingerprint is the SHA256 fingerprint of the public half.
	Fingerprint string `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	// Encrypted is true when the key needs a passphrase.
	Encrypted bool `json:"encrypted,omitempty" yaml:"encrypted,omitempty"`
	// ParseError is set when the file exists but is not a usable private key.
	// For the bad keys this is expected.
	ParseError string `json:"parseError,omitempty" yaml:"parseError,omitempty"`
	// Bad marks keys the server is expected to reject.
	Bad bool `json:"bad" yaml:"bad"`
}

// Path returns the full path of key name inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name)
}

// Inspect reads and parses the key name inside dir.
func Inspect(dir, name string) Info {
	info := Info{Name: name, Path: Path(dir, name), Bad: IsBad(name)}

	data, err := os.ReadFile(info.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			info.Exists = true
			info.ParseError = err.Error()
		}
		return info
	}
	info.Exists = true

	signer, err := ssh.ParsePrivateKey(data)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			info.Encrypted = true
			if missing.PublicKey != nil {
				info.Algorithm = missing.PublicKey.Type()
				info.Fingerprint = ssh.FingerprintSHA256(missing.PublicKey)
			}
			return info
		}
		info.ParseError = err.Error()
		return info
	}

	info.Algorithm = signer.PublicKey().Type()
	info.Fingerprint = ssh.FingerprintSHA256(signer.PublicKey())
	return info
}

// Inventory inspects every known key in dir.
func Inventory(dir string) []Info {
	infos := make([]Info, 0, len(All))
	for _, name := range All {
		info := Inspect(dir, name)
		if info.ParseError != "" && !info.Bad {
			logging.Warn("Keys", "key %s could not be parsed: %s", info.Path, info.ParseError)
		}
		infos = append(infos, info)
	}
	return infos
}

// RequireFiles returns an error naming every key in names missing from dir.
func RequireFiles(dir string, names ...string) error {
	var missing []string
	for _, name := range names {
		if _, err := os.Stat(Path(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("key files missing in %s: %v", dir, missing)
	}
	return nil
}

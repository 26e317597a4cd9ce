package protocol

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Protocol selects the client syntax and default connection options.
type Protocol int

const (
	// FTP is plain FTP with user/password login.
	FTP Protocol = iota + 1
	// SFTP is SSH file transfer, authenticated by key or password.
	SFTP
)

// String returns the URL scheme of the protocol.
func (p Protocol) String() string {
	switch p {
	case FTP:
		return "ftp"
	case SFTP:
		return "sftp"
	default:
		return fmt.Sprintf("Protocol(%d)", int(p))
	}
}

// ParseProtocol maps a URL scheme to a Protocol.
func ParseProtocol(scheme string) (Protocol, error) {
	switch strings.ToLower(scheme) {
	case "ftp":
		return FTP, nil
	case "sftp":
		return SFTP, nil
	default:
		return 0, fmt.Errorf("unsupported protocol %q", scheme)
	}
}

// BaseURL is the home directory of a scenario: protocol, host, port and root path.
type BaseURL struct {
	Protocol Protocol
	Host     string
	Port     int
	// Root is the home path without leading or trailing slash; empty for "/".
	Root string
}

// ParseBaseURL parses URLs such as sftp://localhost:1234/storage/emulated/0/.
func ParseBaseURL(raw string) (BaseURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return BaseURL{}, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}

	proto, err := ParseProtocol(u.Scheme)
	if err != nil {
		return BaseURL{}, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}

	if u.Hostname() == "" {
		return BaseURL{}, fmt.Errorf("invalid base URL %q: missing host", raw)
	}

	port, err := strconv.Atoi(u.Port())
	if err != nil {
		return BaseURL{}, fmt.Errorf("invalid base URL %q: missing or bad port", raw)
	}

	return BaseURL{
		Protocol: proto,
		Host:     u.Hostname(),
		Port:     port,
		Root:     strings.Trim(u.Path, "/"),
	}, nil
}

// String renders the URL of the home directory, always with a trailing slash.
func (b BaseURL) String() string {
	return b.Dir()
}

// Dir returns the URL of the directory below the home reached through
// segments, with a trailing slash.
func (b BaseURL) Dir(segments ...string) string {
	path := JoinPath(append(rootSegments(b.Root), segments...))
	if path != "" {
		path += "/"
	}
	return fmt.Sprintf("%s://%s:%d/%s", b.Protocol, b.Host, b.Port, path)
}

func rootSegments(root string) []string {
	if root == "" {
		return nil
	}
	return strings.Split(root, "/")
}

// JoinPath joins path segments with a single "/". The result never starts
// or ends with a separator, and is empty for an empty list. Empty segments
// are skipped.
func JoinPath(segments []string) string {
	var b strings.Builder
	sep := ""
	for _, s := range segments {
		if s == "" {
			continue
		}
		b.WriteString(sep)
		b.WriteString(s)
		sep = "/"
	}
	return b.String()
}

// Credentials selects how the client authenticates.
type Credentials struct {
	// KeyFile is a private key path; used for SFTP when set.
	KeyFile string
	// UserPass is the user:password pair, used for FTP and for SFTP without a key.
	UserPass string
}

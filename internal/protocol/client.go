package protocol

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"ftpprobe/internal/process"
	"ftpprobe/pkg/logging"
)

// Options configures the client invocations.
type Options struct {
	// Curl and SCP are the client binaries.
	Curl string
	SCP  string
	// CurlExtraArgs are appended to every curl option set.
	CurlExtraArgs []string
	// Host and SFTPPort are the SCP target.
	Host     string
	SFTPPort int
	// DefaultKey is the private key path used for SFTP and SCP unless a
	// call passes other credentials.
	DefaultKey string
	// UserPass is the user:password pair for FTP and password SFTP.
	UserPass string
	// TestFile is the local reference payload for uploads.
	TestFile string
}

// Client issues one file-transfer operation per call through curl or scp.
type Client struct {
	runner process.Runner
	opts   Options
}

// NewClient creates a client running its commands through runner.
func NewClient(runner process.Runner, opts Options) *Client {
	return &Client{runner: runner, opts: opts}
}

// Options returns the client configuration.
func (c *Client) Options() Options {
	return c.opts
}

// DefaultCredentials returns the credentials used when a call does not pick any:
// the default key for SFTP, user/password for FTP.
func (c *Client) DefaultCredentials(proto Protocol) Credentials {
	if proto == SFTP {
		return Credentials{KeyFile: c.opts.DefaultKey}
	}
	return Credentials{UserPass: c.opts.UserPass}
}

// curlOptions returns the option set for proto with creds.
func (c *Client) curlOptions(proto Protocol, creds Credentials) []string {
	var opts []string
	switch {
	case proto == SFTP && creds.KeyFile != "":
		opts = []string{"-vk", "--key", creds.KeyFile}
	case proto == SFTP:
		opts = []string{"-vk", "--user", creds.UserPass}
	default:
		userPass := creds.UserPass
		if userPass == "" {
			userPass = c.opts.UserPass
		}
		opts = []string{"-v", "--user", userPass}
	}
	return append(opts, c.opts.CurlExtraArgs...)
}

func (c *Client) curl(proto Protocol, creds Credentials, args ...string) process.Command {
	return process.NewCommand(c.opts.Curl, c.curlOptions(proto, creds)...).With(args...)
}

// List fetches the directory listing at url with the default credentials.
// A failing client is an error.
func (c *Client) List(ctx context.Context, url string, proto Protocol) (string, error) {
	return c.ListWith(ctx, url, proto, c.DefaultCredentials(proto), true)
}

// ListWith fetches the directory listing at url with explicit credentials.
// With check false a rejected connection yields the (usually empty) output
// and no error.
func (c *Client) ListWith(ctx context.Context, url string, proto Protocol, creds Credentials, check bool) (string, error) {
	logging.Info("Protocol", "downloading url: %s", url)
	return c.runner.Run(ctx, c.curl(proto, creds, url), check)
}

// remoteCommands builds the quoted server command arguments for an action.
func remoteCommands(commands ...string) []string {
	args := make([]string, 0, 2*len(commands))
	for _, cmd := range commands {
		args = append(args, "-Q", cmd)
	}
	return args
}

// send runs server commands against base. The listing of base that curl
// prints afterwards is returned. Exit status is ignored: some servers report
// failure on directory commands that did succeed.
func (c *Client) send(ctx context.Context, base BaseURL, commands ...string) (string, error) {
	proto := base.Protocol
	cmd := c.curl(proto, c.DefaultCredentials(proto), base.String()).With(remoteCommands(commands...)...)
	return c.runner.Run(ctx, cmd, false)
}

// MakeDirCommand returns the server command creating path.
func MakeDirCommand(proto Protocol, path string) string {
	if proto == SFTP {
		return "MKDIR " + path
	}
	return "MKD " + path
}

// RemoveDirCommand returns the server command removing the directory path.
func RemoveDirCommand(proto Protocol, path string) string {
	if proto == SFTP {
		return "RMDIR " + path
	}
	return "RMD " + path
}

// RemoveFileCommand returns the server command deleting the file path.
func RemoveFileCommand(proto Protocol, path string) string {
	if proto == SFTP {
		return "RM " + path
	}
	return "DELE " + path
}

// RenameCommands returns the server commands renaming oldPath to newPath.
// SFTP has a single RENAME; FTP needs RNFR followed by RNTO in the same session.
func RenameCommands(proto Protocol, oldPath, newPath string) []string {
	if proto == SFTP {
		return []string{"RENAME " + oldPath + " " + newPath}
	}
	return []string{"RNFR " + oldPath, "RNTO " + newPath}
}

// CreateDir creates name directly below base.
func (c *Client) CreateDir(ctx context.Context, base BaseURL, name string) (string, error) {
	logging.Info("Protocol", "creating dir: %s %s", base, name)
	return c.send(ctx, base, MakeDirCommand(base.Protocol, name))
}

// CreateSubDir creates the directory reached through dirs below base.
func (c *Client) CreateSubDir(ctx context.Context, base BaseURL, dirs []string) (string, error) {
	logging.Info("Protocol", "creating sub dir: %s %v", base, dirs)
	return c.send(ctx, base, MakeDirCommand(base.Protocol, JoinPath(dirs)))
}

// RemoveDir removes the directory name directly below base.
func (c *Client) RemoveDir(ctx context.Context, base BaseURL, name string) (string, error) {
	logging.Info("Protocol", "removing dir: %s %s", base, name)
	return c.send(ctx, base, RemoveDirCommand(base.Protocol, name))
}

// RemoveSubDir removes the directory reached through dirs below base.
func (c *Client) RemoveSubDir(ctx context.Context, base BaseURL, dirs []string) (string, error) {
	logging.Info("Protocol", "removing sub dir: %s %v", base, dirs)
	return c.send(ctx, base, RemoveDirCommand(base.Protocol, JoinPath(dirs)))
}

// RemoveFile deletes filename inside the directory reached through dirs.
func (c *Client) RemoveFile(ctx context.Context, base BaseURL, dirs []string, filename string) (string, error) {
	logging.Info("Protocol", "removing file: %s %v %s", base, dirs, filename)
	path := JoinPath(append(append([]string(nil), dirs...), filename))
	return c.send(ctx, base, RemoveFileCommand(base.Protocol, path))
}

// Rename renames oldName to newName inside the directory reached through dirs.
func (c *Client) Rename(ctx context.Context, base BaseURL, dirs []string, oldName, newName string) (string, error) {
	logging.Info("Protocol", "renaming: %s %v %s to %s", base, dirs, oldName, newName)
	oldPath := JoinPath(append(append([]string(nil), dirs...), oldName))
	newPath := JoinPath(append(append([]string(nil), dirs...), newName))
	return c.send(ctx, base, RenameCommands(base.Protocol, oldPath, newPath)...)
}

// Upload transfers the reference test file into the directory at dirURL.
func (c *Client) Upload(ctx context.Context, dirURL string, proto Protocol) (string, error) {
	logging.Info("Protocol", "uploading to: %s", dirURL)
	cmd := c.curl(proto, c.DefaultCredentials(proto), "-T", c.opts.TestFile, dirURL)
	return c.runner.Run(ctx, cmd, true)
}

// Download fetches filename from the directory at dirURL into destDir.
func (c *Client) Download(ctx context.Context, dirURL, filename, destDir string, proto Protocol) (string, error) {
	logging.Info("Protocol", "downloading: %s%s", dirURL, filename)
	dest := filepath.Join(destDir, filename)
	cmd := c.curl(proto, c.DefaultCredentials(proto), "-o", dest, dirURL+filename)
	return c.runner.Run(ctx, cmd, true)
}

func (c *Client) scp(args ...string) process.Command {
	return process.NewCommand(c.opts.SCP,
		"-i", c.opts.DefaultKey,
		"-P", strconv.Itoa(c.opts.SFTPPort),
		"-o", "StrictHostKeyChecking=no",
		"-o", "UserKnownHostsFile=/dev/null",
		"-o", "PreferredAuthentications=publickey",
	).With(args...)
}

// SCPUpload copies the reference test file to remotePath (relative to the
// server's home).
func (c *Client) SCPUpload(ctx context.Context, remotePath string) (string, error) {
	logging.Info("Protocol", "scp upload %s", remotePath)
	return c.runner.Run(ctx, c.scp(c.opts.TestFile, c.remote(remotePath)), true)
}

// SCPDownload copies remotePath to localPath.
func (c *Client) SCPDownload(ctx context.Context, remotePath, localPath string) (string, error) {
	logging.Info("Protocol", "scp download %s", remotePath)
	return c.runner.Run(ctx, c.scp(c.remote(remotePath), localPath), true)
}

func (c *Client) remote(path string) string {
	return fmt.Sprintf("%s:%s", c.opts.Host, path)
}

package config

// DriverConfig is the top-level configuration for the integration driver.
type DriverConfig struct {
	// Host is the address the forwarded server ports are reachable on.
	Host string `yaml:"host"`
	// Ports are the server ports, forwarded 1:1 from the device.
	Ports PortsConfig `yaml:"ports"`
	// KeyDir holds the private keys used for SFTP/SCP authentication.
	KeyDir string `yaml:"keyDir"`
	// DefaultKey is the key file name (inside KeyDir) used when a scenario does not pick one.
	DefaultKey string `yaml:"defaultKey"`
	// TestFile is the local reference payload uploaded during the cycles.
	TestFile string `yaml:"testFile"`
	// TmpDir is recreated at the start of every scenario to receive downloads.
	TmpDir string `yaml:"tmpDir"`
	// User and Password are used for FTP and password-based SFTP.
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	// Clients names the external client binaries.
	Clients ClientsConfig `yaml:"clients"`
	// Forward controls adb port forwarding before the run.
	Forward ForwardConfig `yaml:"forward"`
	// BaseURLs maps a storage backend name to the URL templates of its home directory.
	BaseURLs map[string]BaseURLTemplates `yaml:"baseUrls"`
	// FailOnErrors makes the driver exit non-zero when assertion failures were recorded.
	FailOnErrors bool `yaml:"failOnErrors"`
	// LogLevel is debug, info, warn or error. The --debug flag wins over it.
	LogLevel string `yaml:"logLevel,omitempty"`
}

// PortsConfig lists the server ports.
type PortsConfig struct {
	SFTP       int `yaml:"sftp"`
	FTP        int `yaml:"ftp"`
	FTPPassive int `yaml:"ftpPassive"`
}

// ClientsConfig names the external programs the driver invokes.
type ClientsConfig struct {
	Curl string `yaml:"curl"`
	SCP  string `yaml:"scp"`
	ADB  string `yaml:"adb"`
	// CurlExtraArgs is appended to every curl invocation, e.g. "--connect-timeout 10".
	// Quoted substrings are kept as one argument.
	CurlExtraArgs string `yaml:"curlExtraArgs,omitempty"`
}

// ForwardConfig controls device port forwarding.
type ForwardConfig struct {
	Enabled bool `yaml:"enabled"`
	// Serial is passed to adb -s when more than one device is attached.
	Serial string `yaml:"serial,omitempty"`
	// RemoveOnExit drops the forwards again after the run.
	RemoveOnExit bool `yaml:"removeOnExit,omitempty"`
}

// BaseURLTemplates are Go text/templates (with sprig functions) rendering the
// home URL of a backend for each protocol. Template data: .Host, .Port, .Protocol.
type BaseURLTemplates struct {
	SFTP string `yaml:"sftp"`
	FTP  string `yaml:"ftp"`
}

// Credentials returns the user:password pair in curl's --user format.
func (c DriverConfig) Credentials() string {
	return c.User + ":" + c.Password
}

package config

const (
	// DefaultHost is where adb exposes the forwarded device ports.
	DefaultHost = "localhost"

	DefaultPortSFTP       = 1234
	DefaultPortFTP        = 12345
	DefaultPortFTPPassive = 5678

	// DefaultKeyDir is relative to the working directory the driver is started from.
	DefaultKeyDir   = "../pftpd-pojo-lib/src/test/resources/keys"
	DefaultKeyName  = "ed25519.key"
	DefaultTestFile = "testfile"
	DefaultTmpDir   = "/tmp/pftpd-tests"

	DefaultUser     = "user"
	DefaultPassword = "test"

	sftpHomeFilesystem = "sftp://{{ .Host }}:{{ .Port }}/storage/emulated/0/"
	sftpHomeDocuments  = "sftp://{{ .Host }}:{{ .Port }}/"
	ftpHome            = "ftp://{{ .Host }}:{{ .Port }}/"
)

// GetDefaultConfig returns the configuration used when no config file exists.
func GetDefaultConfig() DriverConfig {
	return DriverConfig{
		Host: DefaultHost,
		Ports: PortsConfig{
			SFTP:       DefaultPortSFTP,
			FTP:        DefaultPortFTP,
			FTPPassive: DefaultPortFTPPassive,
		},
		KeyDir:     DefaultKeyDir,
		DefaultKey: DefaultKeyName,
		TestFile:   DefaultTestFile,
		TmpDir:     DefaultTmpDir,
		User:       DefaultUser,
		Password:   DefaultPassword,
		Clients: ClientsConfig{
			Curl: "curl",
			SCP:  "scp",
			ADB:  "adb",
		},
		Forward: ForwardConfig{Enabled: true},
		BaseURLs: map[string]BaseURLTemplates{
			"fs":    {SFTP: sftpHomeFilesystem, FTP: ftpHome},
			"root":  {SFTP: sftpHomeFilesystem, FTP: ftpHome},
			"saf":   {SFTP: sftpHomeDocuments, FTP: ftpHome},
			"safro": {SFTP: sftpHomeDocuments, FTP: ftpHome},
		},
	}
}

// Package config loads the driver configuration.
//
// Configuration lives in a single YAML file, by default
// ~/.config/ftpprobe/config.yaml. A missing file is fine: the built-in
// defaults match the stock server setup (ports 1234/12345/5678 forwarded to
// localhost, keys from the server's test resources, /tmp/pftpd-tests as the
// download scratch directory).
//
// Home URLs per storage backend are text/templates with the sprig function
// set, so a setup with a different home can be expressed without code:
//
//	baseUrls:
//	  fs:
//	    sftp: "sftp://{{ .Host }}:{{ .Port }}/storage/emulated/0/"
//	    ftp:  "ftp://{{ .Host }}:{{ .Port }}/"
//	  saf:
//	    sftp: "sftp://{{ .Host }}:{{ .Port }}/{{ env \"SAF_ROOT\" | trimPrefix \"/\" }}"
//
// Command line flags override file values; see cmd/run.go.
package config

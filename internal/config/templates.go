package config

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// URLData is the data passed to base URL templates.
type URLData struct {
	Host     string
	Port     int
	Protocol string
}

// RenderBaseURL renders the home URL of storage for protocol ("sftp" or "ftp").
func (c DriverConfig) RenderBaseURL(storage, protocol string) (string, error) {
	tmpls, ok := c.BaseURLs[storage]
	if !ok {
		return "", fmt.Errorf("no base URL configured for storage %q", storage)
	}

	var (
		src  string
		port int
	)
	switch protocol {
	case "sftp":
		src, port = tmpls.SFTP, c.Ports.SFTP
	case "ftp":
		src, port = tmpls.FTP, c.Ports.FTP
	default:
		return "", fmt.Errorf("unknown protocol %q", protocol)
	}

	t, err := template.New(storage + "-" + protocol).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(src)
	if err != nil {
		return "", fmt.Errorf("invalid base URL template for %s/%s: %w", storage, protocol, err)
	}

	var buf bytes.Buffer
	data := URLData{Host: c.Host, Port: port, Protocol: protocol}
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render base URL for %s/%s: %w", storage, protocol, err)
	}

	return strings.TrimSpace(buf.String()), nil
}

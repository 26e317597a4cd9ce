package config

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

func validatePort(errs *ValidationErrors, field string, port int) {
	if port < 1 || port > 65535 {
		errs.Add(field, "must be between 1 and 65535", port)
	}
}

// Validate checks the configuration for values the driver cannot work with.
func (c DriverConfig) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Host) == "" {
		errs.Add("host", "is required")
	}
	validatePort(&errs, "ports.sftp", c.Ports.SFTP)
	validatePort(&errs, "ports.ftp", c.Ports.FTP)
	validatePort(&errs, "ports.ftpPassive", c.Ports.FTPPassive)

	if strings.TrimSpace(c.TmpDir) == "" || c.TmpDir == "/" {
		errs.Add("tmpDir", "must be a dedicated scratch directory", c.TmpDir)
	}
	if c.TestFile == "" {
		errs.Add("testFile", "is required")
	}
	if c.DefaultKey == "" {
		errs.Add("defaultKey", "is required")
	}
	if c.Clients.Curl == "" {
		errs.Add("clients.curl", "is required")
	}
	if c.Clients.SCP == "" {
		errs.Add("clients.scp", "is required")
	}
	if c.Forward.Enabled && c.Clients.ADB == "" {
		errs.Add("clients.adb", "is required when forwarding is enabled")
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs.Add("logLevel", "must be one of debug, info, warn, error", c.LogLevel)
	}

	storages := make([]string, 0, len(c.BaseURLs))
	for storage := range c.BaseURLs {
		storages = append(storages, storage)
	}
	sort.Strings(storages)
	for _, storage := range storages {
		tmpl := c.BaseURLs[storage]
		if tmpl.SFTP == "" {
			errs.Add("baseUrls."+storage+".sftp", "is required")
		}
		if tmpl.FTP == "" {
			errs.Add("baseUrls."+storage+".ftp", "is required")
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

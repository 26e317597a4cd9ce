package config

import (
	"fmt"
	"path/filepath"
)

// ConfigurationError is returned when the configuration file cannot be used.
type ConfigurationError struct {
	FilePath  string `json:"filePath"`
	FileName  string `json:"fileName"`
	ErrorType string `json:"errorType"` // io, parse, validation
	Message   string `json:"message"`
}

// Error implements the error interface
func (ce ConfigurationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ce.ErrorType, ce.FileName, ce.Message)
}

// NewConfigurationError creates a ConfigurationError for the file at path.
func NewConfigurationError(path, errorType, message string) ConfigurationError {
	return ConfigurationError{
		FilePath:  path,
		FileName:  filepath.Base(path),
		ErrorType: errorType,
		Message:   message,
	}
}

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ftpprobe/internal/scenario"
	"ftpprobe/pkg/logging"

	"gopkg.in/yaml.v3"
)

// document is the machine-readable form of a run.
type document struct {
	scenario.Result `yaml:",inline"`
	Duration        string `json:"duration" yaml:"duration"`
	Passed          bool   `json:"passed" yaml:"passed"`
}

// Marshal encodes result as YAML or JSON depending on the extension of path.
func Marshal(path string, result *scenario.Result) ([]byte, error) {
	doc := document{
		Result:   *result,
		Duration: result.Duration().Round(time.Millisecond).String(),
		Passed:   result.Passed(),
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(doc)
	case ".json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q: use .yaml, .yml or .json", filepath.Ext(path))
	}
}

// Save writes result to path, creating the parent directory if needed.
func Save(path string, result *scenario.Result) error {
	data, err := Marshal(path, result)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	logging.Info("Report", "report saved to %s", path)
	return nil
}

package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohmanhakim/element-locator/pkg/failure"
	"github.com/rohmanhakim/element-locator/pkg/fileutil"
	"gopkg.in/yaml.v3"
)

// FormatOf picks the document format from the file extension.
func FormatOf(path string) (Format, error) {
	switch fileutil.GetFileExtension(path) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", &WorkflowError{
		Message: "expected a .yaml, .yml or .json file",
		Cause:   ErrCauseUnsupportedFormat,
		Path:    path,
	}
}

func Load(path string) (Workflow, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Workflow{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Workflow{}, &WorkflowError{Message: err.Error(), Cause: ErrCauseReadFailure, Path: path}
	}
	wf, err := Parse(data, format)
	if err != nil {
		return Workflow{}, &WorkflowError{Message: err.Error(), Cause: ErrCauseParseFailure, Path: path}
	}
	return wf, nil
}

func Parse(data []byte, format Format) (Workflow, error) {
	var wf Workflow
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &wf)
	case FormatJSON:
		err = json.Unmarshal(data, &wf)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	return wf, err
}

func Marshal(wf Workflow, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(wf); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(wf, "", "  ")
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// Save writes wf to path in the format its extension names and returns the
// written path.
func Save(path string, wf Workflow) (string, error) {
	format, err := FormatOf(path)
	if err != nil {
		return "", err
	}
	data, err := Marshal(wf, format)
	if err != nil {
		return "", &WorkflowError{Message: err.Error(), Cause: ErrCauseEncodeFailure, Path: path}
	}
	written, writeErr := fileutil.WriteFile(filepath.Dir(path), filepath.Base(path), data)
	if writeErr != nil {
		return "", &WorkflowError{
			Message:   writeErr.Error(),
			Retryable: writeErr.Severity() == failure.SeverityRecoverable,
			Cause:     ErrCauseWriteFailure,
			Path:      path,
		}
	}
	return written, nil
}

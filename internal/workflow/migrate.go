package workflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rohmanhakim/element-locator/pkg/fileutil"
	"gopkg.in/yaml.v3"
)

/*
Responsibilities
- Convert JSON workflow documents to YAML keeping key order
- Keep a .bak copy of every converted file on request
- Repoint a directory's metadata index at the converted files

A JSON file is only removed once its backup exists.
*/

type MigrateResult struct {
	Source      string
	YAMLPath    string
	BackupPath  string
	RemovedJSON bool
}

const metadataIndexName = "metadata.json"

// Migrate converts the JSON workflow at jsonPath into a YAML file next to
// it. With backup, the original is copied to <jsonPath>.bak and removed.
func Migrate(jsonPath string, backup bool) (MigrateResult, error) {
	result := MigrateResult{Source: jsonPath}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return result, &WorkflowError{Message: err.Error(), Cause: ErrCauseReadFailure, Path: jsonPath}
	}
	yamlData, err := JSONToYAML(data)
	if err != nil {
		return result, &WorkflowError{Message: err.Error(), Cause: ErrCauseParseFailure, Path: jsonPath}
	}

	if backup {
		result.BackupPath = jsonPath + ".bak"
		if err := os.WriteFile(result.BackupPath, data, 0644); err != nil {
			return result, &WorkflowError{Message: err.Error(), Cause: ErrCauseWriteFailure, Path: result.BackupPath}
		}
	}

	yamlPath := fileutil.ReplaceExtension(jsonPath, "yaml")
	written, writeErr := fileutil.WriteFile(filepath.Dir(yamlPath), filepath.Base(yamlPath), yamlData)
	if writeErr != nil {
		return result, &WorkflowError{Message: writeErr.Error(), Cause: ErrCauseWriteFailure, Path: yamlPath}
	}
	result.YAMLPath = written

	if backup {
		if err := os.Remove(jsonPath); err != nil {
			return result, &WorkflowError{Message: err.Error(), Cause: ErrCauseWriteFailure, Path: jsonPath}
		}
		result.RemovedJSON = true
	}
	return result, nil
}

// JSONToYAML re-encodes a JSON document as block-style YAML, keeping the
// key order of the input.
func JSONToYAML(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := decodeNode(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after the JSON document")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeNode reads one JSON value from dec as a YAML node. Scalars carry
// their JSON type as tag so the encoder quotes strings like "true" or "42".
func decodeNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				value, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		case '[':
			node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				item, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}, nil
	case json.Number:
		tag := "!!float"
		if _, err := v.Int64(); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

type DirectoryResult struct {
	Migrated     []MigrateResult
	Planned      []string
	IndexUpdates int
	Failures     []error
}

// MigrateDirectory migrates every file in dir matching pattern, then
// updates the directory's metadata index. With dryRun nothing is written;
// Planned lists the files that would be converted.
func MigrateDirectory(dir string, pattern string, dryRun bool, backup bool) (DirectoryResult, error) {
	if pattern == "" {
		pattern = DefaultMigratePattern
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return DirectoryResult{}, &WorkflowError{Message: err.Error(), Cause: ErrCauseReadFailure, Path: dir}
	}

	var result DirectoryResult
	for _, path := range matches {
		if dryRun {
			result.Planned = append(result.Planned, path)
			continue
		}
		migrated, err := Migrate(path, backup)
		if err != nil {
			result.Failures = append(result.Failures, err)
			continue
		}
		result.Migrated = append(result.Migrated, migrated)
	}

	updates, err := UpdateMetadataIndex(filepath.Join(dir, metadataIndexName), dryRun)
	if err != nil {
		result.Failures = append(result.Failures, err)
	}
	result.IndexUpdates = updates
	return result, errors.Join(result.Failures...)
}

// UpdateMetadataIndex rewrites every "file_path" ending in .json to .yaml
// in the index at path, keeping a .bak copy. It returns the number of
// entries that changed, or would change under dryRun. A missing index is
// not an error.
func UpdateMetadataIndex(path string, dryRun bool) (int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, &WorkflowError{Message: err.Error(), Cause: ErrCauseReadFailure, Path: path}
	}

	var index map[string]map[string]any
	if err := json.Unmarshal(data, &index); err != nil {
		return 0, &WorkflowError{Message: err.Error(), Cause: ErrCauseParseFailure, Path: path}
	}

	updated := 0
	for _, entry := range index {
		filePath, ok := entry["file_path"].(string)
		if !ok || !strings.HasSuffix(filePath, ".json") {
			continue
		}
		entry["file_path"] = strings.TrimSuffix(filePath, ".json") + ".yaml"
		updated++
	}
	if dryRun || updated == 0 {
		return updated, nil
	}

	if err := os.WriteFile(path+".bak", data, 0644); err != nil {
		return 0, &WorkflowError{Message: err.Error(), Cause: ErrCauseWriteFailure, Path: path + ".bak"}
	}
	out, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return 0, &WorkflowError{Message: err.Error(), Cause: ErrCauseEncodeFailure, Path: path}
	}
	if _, err := fileutil.WriteFile(filepath.Dir(path), filepath.Base(path), out); err != nil {
		return 0, &WorkflowError{Message: err.Error(), Cause: ErrCauseWriteFailure, Path: path}
	}
	return updated, nil
}

func (r DirectoryResult) String() string {
	return fmt.Sprintf("migrated %d, planned %d, index updates %d, failures %d",
		len(r.Migrated), len(r.Planned), r.IndexUpdates, len(r.Failures))
}

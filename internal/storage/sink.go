package storage

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/internal/report"
	"github.com/rohmanhakim/element-locator/internal/strategy"
	"github.com/rohmanhakim/element-locator/internal/workflow"
	"github.com/rohmanhakim/element-locator/pkg/failure"
	"github.com/rohmanhakim/element-locator/pkg/fileutil"
	"github.com/rohmanhakim/element-locator/pkg/hashutil"
	"github.com/rohmanhakim/element-locator/pkg/urlutil"
)

/*
Responsibilities
- Persist locate reports and generated step files
- Ensure deterministic filenames

Output Characteristics
- Reports are named after the canonical page URL and, when given, the
  step number: <hash>.report.md or <hash>.<step>.report.html
- Step files are named after the fingerprint of their strategies:
  <hash>.step.yaml or <hash>.step.json
- Reruns overwrite the previous file of the same name
*/

type Sink interface {
	WriteReport(
		outputDir string,
		pageURL url.URL,
		stepNumber int,
		doc report.Document,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)

	WriteStep(
		outputDir string,
		step workflow.Step,
		format workflow.Format,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)
}

type LocalSink struct {
	metadataSink metadata.MetadataSink
}

var _ Sink = (*LocalSink)(nil)

func NewLocalSink(
	metadataSink metadata.MetadataSink,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
	}
}

func (s *LocalSink) WriteReport(
	outputDir string,
	pageURL url.URL,
	stepNumber int,
	doc report.Document,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	canonical := urlutil.Canonicalize(pageURL)
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrURL, canonical.String()),
	}

	result, err := writeReport(outputDir, canonical, stepNumber, doc, hashAlgo)
	if err != nil {
		s.recordError("LocalSink.WriteReport", err, attrs)
		return WriteResult{}, err
	}
	s.recordArtifact(metadata.ArtifactReport, result, attrs)
	return result, nil
}

func writeReport(
	outputDir string,
	canonical url.URL,
	stepNumber int,
	doc report.Document,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, *StorageError) {
	key, err := shortHash([]byte(canonical.String()), hashAlgo)
	if err != nil {
		return WriteResult{}, err
	}
	name := key + reportInfix + doc.Format().Extension()
	if stepNumber > 0 {
		name = fmt.Sprintf("%s.%d%s%s", key, stepNumber, reportInfix, doc.Format().Extension())
	}
	return write(outputDir, name, key, doc.Content(), hashAlgo)
}

func (s *LocalSink) WriteStep(
	outputDir string,
	step workflow.Step,
	format workflow.Format,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrURL, step.URL),
	}

	result, err := writeStep(outputDir, step, format, hashAlgo)
	if err != nil {
		s.recordError("LocalSink.WriteStep", err, attrs)
		return WriteResult{}, err
	}
	s.recordArtifact(metadata.ArtifactWorkflow, result, attrs)
	return result, nil
}

func writeStep(
	outputDir string,
	step workflow.Step,
	format workflow.Format,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, *StorageError) {
	strategies, err := step.Strategies()
	if err != nil {
		return WriteResult{}, &StorageError{Message: err.Error(), Cause: ErrCauseEncodeFailure}
	}
	fingerprint, err := strategy.Fingerprint(strategies, hashAlgo)
	if err != nil {
		return WriteResult{}, &StorageError{Message: err.Error(), Cause: ErrCauseHashComputationFailed}
	}
	key := fingerprint[:keyLength]

	wf := workflow.Workflow{
		Name:  step.Description,
		Steps: []workflow.Step{step},
	}
	data, err := workflow.Marshal(wf, format)
	if err != nil {
		return WriteResult{}, &StorageError{Message: err.Error(), Cause: ErrCauseEncodeFailure}
	}
	return write(outputDir, key+stepInfix+"."+string(format), key, data, hashAlgo)
}

func write(
	outputDir string,
	name string,
	key string,
	content []byte,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, *StorageError) {
	contentHash, err := hashutil.HashBytes(content, hashAlgo)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message: err.Error(),
			Cause:   ErrCauseHashComputationFailed,
		}
	}

	fullPath, writeErr := fileutil.WriteFile(outputDir, name, content)
	if writeErr != nil {
		var fileErr *fileutil.FileError
		if errors.As(writeErr, &fileErr) {
			cause := ErrCauseWriteFailure
			switch fileErr.Cause {
			case fileutil.ErrCauseDiskFull:
				cause = ErrCauseDiskFull
			case fileutil.ErrCausePathError:
				cause = ErrCausePathError
			}
			return WriteResult{}, &StorageError{
				Message:   fileErr.Message,
				Retryable: fileErr.Retryable,
				Cause:     cause,
				Path:      fileErr.Path,
			}
		}
		return WriteResult{}, &StorageError{
			Message: writeErr.Error(),
			Cause:   ErrCauseWriteFailure,
			Path:    outputDir,
		}
	}

	return NewWriteResult(key, fullPath, contentHash), nil
}

func shortHash(data []byte, hashAlgo hashutil.HashAlgo) (string, *StorageError) {
	key, err := hashutil.ShortHash(data, hashAlgo, keyLength)
	if err != nil {
		return "", &StorageError{
			Message: err.Error(),
			Cause:   ErrCauseHashComputationFailed,
		}
	}
	return key, nil
}

func (s *LocalSink) recordArtifact(kind metadata.ArtifactKind, result WriteResult, attrs []metadata.Attribute) {
	s.metadataSink.RecordArtifact(
		kind,
		result.Path(),
		append(attrs,
			metadata.NewAttr(metadata.AttrWritePath, result.Path()),
			metadata.NewAttr(metadata.AttrField, result.ContentHash()),
		),
	)
}

func (s *LocalSink) recordError(action string, err *StorageError, attrs []metadata.Attribute) {
	s.metadataSink.RecordError(
		time.Now(),
		"storage",
		action,
		mapStorageErrorToMetadataCause(err),
		err.Error(),
		append(attrs, metadata.NewAttr(metadata.AttrWritePath, err.Path)),
	)
}

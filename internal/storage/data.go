package storage

// WriteResult describes one persisted artifact. Key is the hash the filename
// is derived from.
type WriteResult struct {
	key         string
	path        string
	contentHash string
}

func NewWriteResult(
	key string,
	path string,
	contentHash string,
) WriteResult {
	return WriteResult{
		key:         key,
		path:        path,
		contentHash: contentHash,
	}
}

func (w *WriteResult) Key() string {
	return w.key
}

func (w *WriteResult) Path() string {
	return w.path
}

func (w *WriteResult) ContentHash() string {
	return w.contentHash
}

// keyLength is the number of hex characters of a hash used in filenames.
const keyLength = 12

const (
	reportInfix = ".report"
	stepInfix   = ".step"
)

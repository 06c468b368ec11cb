package datasource

import (
	"context"
	"fmt"
	"os"

	"github.com/yourusername/epl-predictor/internal/models"
)

// FileSourceName identifies the local CSV source
const FileSourceName = "file"

// FileSource reads a results sheet from disk
type FileSource struct {
	path string
}

// NewFileSource creates a source reading the CSV at path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchResults parses the file
func (s *FileSource) FetchResults(ctx context.Context) ([]models.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		code := ErrCodeUnknown
		if os.IsNotExist(err) {
			code = ErrCodeNotFound
		}
		return nil, NewDataSourceError(FileSourceName, code, fmt.Sprintf("failed to open %s", s.path), err)
	}
	defer f.Close()

	return ParseResultsCSV(FileSourceName, f)
}

// Name returns the data source name
func (s *FileSource) Name() string {
	return FileSourceName
}

// Close is a no-op; the file is closed after each fetch
func (s *FileSource) Close() error {
	return nil
}

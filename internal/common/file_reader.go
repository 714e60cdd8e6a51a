package common

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// DefaultMaxReadSize bounds snapshot and config reads.
const DefaultMaxReadSize int64 = 10 * 1024 * 1024

// FileReadOptions configures file reading behavior
type FileReadOptions struct {
	MaxSize int64 // Maximum file size to read (0 = no limit)
}

// DefaultFileReadOptions returns default file reading options
func DefaultFileReadOptions() FileReadOptions {
	return FileReadOptions{
		MaxSize: DefaultMaxReadSize,
	}
}

// FileReader handles file reading operations
type FileReader struct {
	logger zerolog.Logger
}

// NewFileReader creates a new FileReader instance
func NewFileReader(logger zerolog.Logger) *FileReader {
	return &FileReader{
		logger: logger.With().Str("component", "FileReader").Logger(),
	}
}

// FileExists checks if a regular file exists at path
func (fr *FileReader) FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReadFile reads a whole file, refusing files larger than opts.MaxSize.
func (fr *FileReader) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, WrapErrorf(ErrNotFound, "file %s", path)
		}
		return nil, WrapError(err, fmt.Sprintf("failed to stat file: %s", path))
	}
	if info.IsDir() {
		return nil, NewValidationError("path", path, "is a directory")
	}
	if opts.MaxSize > 0 && info.Size() > opts.MaxSize {
		return nil, NewValidationError("path", path,
			fmt.Sprintf("file too large (%d bytes > %d bytes limit)", info.Size(), opts.MaxSize))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, WrapError(err, fmt.Sprintf("failed to open file: %s", path))
	}
	defer func() {
		if err := file.Close(); err != nil {
			fr.logger.Error().Err(err).Str("path", path).Msg("Failed to close file.")
		}
	}()

	return fr.readContent(file, opts.MaxSize)
}

// ReadAll reads from r, applying the same size limit as ReadFile.
func (fr *FileReader) ReadAll(r io.Reader, opts FileReadOptions) ([]byte, error) {
	return fr.readContent(r, opts.MaxSize)
}

func (fr *FileReader) readContent(reader io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(reader)
	}
	// Read one byte past the limit to detect oversized streams.
	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, WrapError(err, "failed to read content")
	}
	if int64(len(data)) > maxSize {
		return nil, NewValidationError("content", len(data),
			fmt.Sprintf("content exceeds %d bytes limit", maxSize))
	}
	return data, nil
}

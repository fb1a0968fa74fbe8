package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	errs "imgcollect/pkg/errors"
)

// ImageExt is the extension given to every saved image, whatever its real format
const ImageExt = ".jpg"

// PadWidth returns the number of decimal digits in stop, which is the width
// every filename index is zero-padded to. Values below 1 yield 1.
func PadWidth(stop int) int {
	width := 1
	for stop >= 10 {
		stop /= 10
		width++
	}
	return width
}

// FileName formats the output filename for the image at index
func FileName(tag string, index, width int) string {
	return fmt.Sprintf("%s_%0*d%s", tag, width, index, ImageExt)
}

// ValidateQuery rejects queries that cannot be used as a single directory name
func ValidateQuery(query string) error {
	switch {
	case strings.TrimSpace(query) == "":
		return errs.InvalidArgument("query must not be empty")
	case query == "." || query == "..":
		return errs.InvalidArgument("query %q is not a valid directory name", query)
	case strings.ContainsAny(query, `/\`) || strings.ContainsRune(query, 0):
		return errs.InvalidArgument("query %q must not contain path separators", query)
	}
	return nil
}

// Manager writes images into the directory for one query
type Manager struct {
	outputDir string
	fileMode  os.FileMode
	saved     int
	mu        sync.Mutex
}

// Option configures a Manager
type Option func(*Manager)

// WithFileMode sets the permissions of saved files
func WithFileMode(mode os.FileMode) Option {
	return func(m *Manager) { m.fileMode = mode }
}

// NewManager prepares {baseDir}/{query}, creating it with dirMode if absent.
// An existing directory is reused as is.
func NewManager(baseDir, query string, dirMode os.FileMode, opts ...Option) (*Manager, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}

	outputDir := filepath.Join(baseDir, query)
	if err := os.MkdirAll(outputDir, dirMode); err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to create output directory: %v", err),
		}
	}

	m := &Manager{
		outputDir: outputDir,
		fileMode:  0o644,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// SaveImage writes the contents of r verbatim to name inside the output
// directory, replacing any existing file, and returns the bytes written.
func (m *Manager) SaveImage(r io.Reader, name string) (int64, error) {
	filename := filepath.Join(m.outputDir, name)

	// The final name only ever holds a complete file
	tempFile := filename + ".tmp"
	out, err := os.OpenFile(tempFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, m.fileMode)
	if err != nil {
		return 0, fsError("failed to create temporary file", err)
	}

	n, err := io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return 0, fsError("failed to save image data", err)
	}
	if closeErr != nil {
		os.Remove(tempFile)
		return 0, fsError("failed to close file", closeErr)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return 0, fsError("failed to rename temporary file", err)
	}

	m.mu.Lock()
	m.saved++
	m.mu.Unlock()

	return n, nil
}

// WriteFile writes data to name inside the output directory
func (m *Manager) WriteFile(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(m.outputDir, name), data, m.fileMode); err != nil {
		return fsError("failed to write file", err)
	}
	return nil
}

func fsError(msg string, err error) error {
	return &errs.Error{
		Type:    errs.ErrorTypeFilesystem,
		Message: fmt.Sprintf("%s: %v", msg, err),
	}
}

// OutputDir returns the query directory path
func (m *Manager) OutputDir() string {
	return m.outputDir
}

// SavedCount returns the number of images written through this manager
func (m *Manager) SavedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported manifest encodings
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Manifest summarizes one provider run over a query
type Manifest struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	Provider   string    `json:"provider" yaml:"provider"`
	Query      string    `json:"query" yaml:"query"`
	Start      int       `json:"start" yaml:"start"`
	Stop       int       `json:"stop" yaml:"stop"`
	Pages      int       `json:"pages" yaml:"pages"`
	StopReason string    `json:"stop_reason" yaml:"stop_reason"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Files      []File    `json:"files" yaml:"files"`
}

// File describes a saved image
type File struct {
	Index     int    `json:"index" yaml:"index"`
	Name      string `json:"name" yaml:"name"`
	SourceURL string `json:"source_url" yaml:"source_url"`
	Size      int64  `json:"size" yaml:"size"`
}

// New starts a manifest for a run
func New(runID, provider, query string, start, stop int) *Manifest {
	return &Manifest{
		RunID:     runID,
		Provider:  provider,
		Query:     query,
		Start:     start,
		Stop:      stop,
		StartedAt: time.Now().UTC(),
		Files:     []File{},
	}
}

// AddFile records a saved image
func (m *Manifest) AddFile(index int, name, sourceURL string, size int64) {
	m.Files = append(m.Files, File{
		Index:     index,
		Name:      name,
		SourceURL: sourceURL,
		Size:      size,
	})
}

// Finish stamps the end of the run
func (m *Manifest) Finish(pages int, reason string) {
	m.Pages = pages
	m.StopReason = reason
	m.FinishedAt = time.Now().UTC()
}

// TotalBytes returns the combined size of all saved files
func (m *Manifest) TotalBytes() int64 {
	var total int64
	for _, f := range m.Files {
		total += f.Size
	}
	return total
}

// FileName returns the manifest filename for a provider tag
func FileName(tag, format string) string {
	return fmt.Sprintf("%s_manifest.%s", tag, normalizeFormat(format))
}

func normalizeFormat(format string) string {
	if strings.EqualFold(format, FormatYAML) || strings.EqualFold(format, "yml") {
		return FormatYAML
	}
	return FormatJSON
}

// Marshal encodes the manifest as JSON or YAML
func (m *Manifest) Marshal(format string) ([]byte, error) {
	switch normalizeFormat(format) {
	case FormatYAML:
		data, err := yaml.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal manifest: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal manifest: %w", err)
		}
		return data, nil
	}
}

// Load reads a manifest, picking the decoder from the file extension
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &m, nil
}

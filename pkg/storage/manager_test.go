package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	errs "imgcollect/pkg/errors"
)

func TestPadWidth(t *testing.T) {
	tests := []struct {
		stop int
		want int
	}{
		{1, 1},
		{9, 1},
		{10, 2},
		{20, 2},
		{28, 2},
		{99, 2},
		{100, 3},
		{999, 3},
		{1000, 4},
		{0, 1},
		{-5, 1},
	}

	for _, tt := range tests {
		if got := PadWidth(tt.stop); got != tt.want {
			t.Errorf("PadWidth(%d) = %d, want %d", tt.stop, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		tag   string
		index int
		width int
		want  string
	}{
		{"bing", 0, 2, "bing_00.jpg"},
		{"bing", 27, 2, "bing_27.jpg"},
		{"google", 40, 3, "google_040.jpg"},
		{"google", 5, 1, "google_5.jpg"},
		{"bing", 123, 2, "bing_123.jpg"},
	}

	for _, tt := range tests {
		if got := FileName(tt.tag, tt.index, tt.width); got != tt.want {
			t.Errorf("FileName(%q, %d, %d) = %q, want %q", tt.tag, tt.index, tt.width, got, tt.want)
		}
	}
}

func TestValidateQuery(t *testing.T) {
	valid := []string{"cats", "red fox", "Ümlaut", "a.b"}
	for _, q := range valid {
		if err := ValidateQuery(q); err != nil {
			t.Errorf("ValidateQuery(%q) unexpected error: %v", q, err)
		}
	}

	invalid := []string{"", "   ", ".", "..", "a/b", `a\b`}
	for _, q := range invalid {
		err := ValidateQuery(q)
		if err == nil {
			t.Errorf("ValidateQuery(%q) expected error", q)
			continue
		}
		if !errs.IsInvalidArgument(err) {
			t.Errorf("ValidateQuery(%q) expected invalid argument, got %v", q, err)
		}
	}
}

func TestManager(t *testing.T) {
	tempDir := t.TempDir()

	manager, err := NewManager(tempDir, "cats", 0o755)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	expectedDir := filepath.Join(tempDir, "cats")
	if manager.OutputDir() != expectedDir {
		t.Errorf("Expected output dir %s, got %s", expectedDir, manager.OutputDir())
	}
	if info, err := os.Stat(expectedDir); err != nil || !info.IsDir() {
		t.Fatalf("Expected query directory to exist: %v", err)
	}

	if manager.SavedCount() != 0 {
		t.Error("Expected initial saved count to be 0")
	}

	testData := []byte("not really a jpeg")
	n, err := manager.SaveImage(bytes.NewReader(testData), "bing_00.jpg")
	if err != nil {
		t.Fatalf("Failed to save image: %v", err)
	}
	if n != int64(len(testData)) {
		t.Errorf("Expected %d bytes written, got %d", len(testData), n)
	}

	content, err := os.ReadFile(filepath.Join(expectedDir, "bing_00.jpg"))
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(content, testData) {
		t.Error("File content does not match expected data")
	}

	if _, err := os.Stat(filepath.Join(expectedDir, "bing_00.jpg.tmp")); !os.IsNotExist(err) {
		t.Error("Expected temporary file to be removed")
	}

	if manager.SavedCount() != 1 {
		t.Errorf("Expected saved count to be 1, got %d", manager.SavedCount())
	}
}

func TestManagerOverwrites(t *testing.T) {
	manager, err := NewManager(t.TempDir(), "dogs", 0o755)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if _, err := manager.SaveImage(bytes.NewReader([]byte("first version")), "google_0.jpg"); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if _, err := manager.SaveImage(bytes.NewReader([]byte("second")), "google_0.jpg"); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(manager.OutputDir(), "google_0.jpg"))
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "second" {
		t.Errorf("Expected file to be overwritten, got %q", content)
	}
}

func TestManagerReusesExistingDirectory(t *testing.T) {
	tempDir := t.TempDir()
	existing := filepath.Join(tempDir, "cats", "keep.txt")
	if err := os.MkdirAll(filepath.Dir(existing), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(existing, []byte("keep"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := NewManager(tempDir, "cats", 0o755); err != nil {
		t.Fatalf("Failed to create manager over existing dir: %v", err)
	}

	if _, err := os.Stat(existing); err != nil {
		t.Error("Expected existing files to be left alone")
	}
}

func TestManagerFileMode(t *testing.T) {
	manager, err := NewManager(t.TempDir(), "modes", 0o755, WithFileMode(0o600))
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.WriteFile("note.json", []byte("{}")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(manager.OutputDir(), "note.json"))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected mode 0600, got %o", info.Mode().Perm())
	}
}

func TestNewManagerErrors(t *testing.T) {
	if _, err := NewManager(t.TempDir(), "a/b", 0o755); !errs.IsInvalidArgument(err) {
		t.Errorf("Expected invalid argument for nested query, got %v", err)
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := NewManager(blocker, "cats", 0o755)
	var fsErr *errs.Error
	if !errors.As(err, &fsErr) || fsErr.Type != errs.ErrorTypeFilesystem {
		t.Errorf("Expected filesystem error, got %v", err)
	}
}

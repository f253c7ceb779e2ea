package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if FileExists(path) {
		t.Error("FileExists() = true for missing file")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("FileExists() = false for regular file")
	}
	if FileExists(dir) {
		t.Error("FileExists() = true for directory")
	}
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	if !DirExists(dir) {
		t.Error("DirExists() = false for directory")
	}
	if DirExists(filepath.Join(dir, "missing")) {
		t.Error("DirExists() = true for missing path")
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "out.html")
	if err := WriteFile(path, "<html></html>"); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("content = %q", data)
	}
}

func TestResetDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dir, "stale.html")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ResetDir(dir); err != nil {
		t.Fatalf("ResetDir() error = %v", err)
	}
	if FileExists(stale) {
		t.Error("ResetDir() kept stale file")
	}
	if !DirExists(dir) {
		t.Error("ResetDir() did not recreate directory")
	}
}

func TestIsFilePath(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"blocks/about.md", true},
		{`blocks\about.md`, true},
		{"about", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsFilePath(tt.in); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"http://example.com/feed", true},
		{"https://example.com/feed", true},
		{"ftp://example.com", false},
		{"content/feeds/local.xml", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

package text

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bibo-tts/bibo/internal/tts"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		want     string
		markdown bool
	}{
		{"markdown", "a.md", "# Hi\n\n**there**", "Hi\n\nthere", true},
		{"upper-case extension", "B.MARKDOWN", "- item", "item", true},
		{"frontmatter", "post.md", "---\ntitle: x\n---\nBody", "Body", true},
		{"text kept verbatim", "c.txt", "# not a heading\n", "# not a heading\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadInput(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("ReadInput() error = %v", err)
			}
			if doc.Text != tt.want {
				t.Errorf("Text = %q, want %q", doc.Text, tt.want)
			}
			if doc.Markdown != tt.markdown {
				t.Errorf("Markdown = %v", doc.Markdown)
			}
			if doc.RawLen != len(tt.content) {
				t.Errorf("RawLen = %d", doc.RawLen)
			}
			if doc.Name() != tt.file {
				t.Errorf("Name() = %q", doc.Name())
			}
		})
	}
}

func TestReadInputErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want error
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.md") }, tts.ErrFileNotFound},
		{"unsupported", func(t *testing.T) string { return writeFile(t, "x.pdf", "text") }, tts.ErrUnsupportedFileType},
		{"directory", func(t *testing.T) string { return t.TempDir() }, tts.ErrUnsupportedFileType},
		{"empty text", func(t *testing.T) string { return writeFile(t, "e.txt", "  \n\t ") }, tts.ErrEmptyFile},
		{"only code", func(t *testing.T) string { return writeFile(t, "c.md", "```\nx := 1\n```\n") }, tts.ErrEmptyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadInput(tt.path(t))
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadInput() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("Cafe\u0301"); got != "Caf\u00e9" {
		t.Errorf("Normalize() = %q, want composed form", got)
	}
}

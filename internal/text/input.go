package text

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bibo-tts/bibo/internal/tts"
	"github.com/bibo-tts/bibo/utils"
	"golang.org/x/text/unicode/norm"
)

// Document is text read from an input file.
type Document struct {
	Path string
	Text string
	// RawLen is the size of the file before cleaning.
	RawLen   int
	Markdown bool
}

// Name returns the file's base name.
func (d Document) Name() string {
	return filepath.Base(d.Path)
}

// ReadInput reads a .md, .markdown or .txt file. Markdown is cleaned with
// CleanMarkdown after its front matter is removed. A file with nothing
// speakable left is an empty-file error.
func ReadInput(path string) (Document, error) {
	path = utils.ExpandPath(path)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, tts.FileNotFound(path, nil)
		}
		return Document{}, tts.FileNotFound(path, err)
	}
	if info.IsDir() {
		return Document{}, tts.UnsupportedFileType("directory")
	}
	if !utils.IsSupportedInput(path) {
		return Document{}, tts.UnsupportedFileType(utils.Extension(path))
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, tts.FileNotFound(path, err)
	}

	doc := Document{
		Path:     path,
		RawLen:   len(b),
		Markdown: utils.IsMarkdownFile(path),
	}
	if doc.Markdown {
		doc.Text = CleanMarkdown(string(utils.RemoveFrontmatter(b)))
	} else {
		doc.Text = string(b)
	}
	doc.Text = Normalize(doc.Text)

	if strings.TrimSpace(doc.Text) == "" {
		return Document{}, tts.EmptyFile(path)
	}
	return doc, nil
}

// Normalize puts text in Unicode NFC form so visually identical input
// produces identical cache keys and engine input.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// Package text turns user input into plain text suitable for speech.
package text

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	md         = goldmark.New()
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// CleanMarkdown strips markdown syntax that would otherwise be read aloud.
// The input is parsed as CommonMark and only its prose is kept: code blocks,
// HTML and thematic breaks are dropped, inline code keeps its contents
// verbatim, images keep their alt text and links their text. Blocks are
// separated by a blank line and list items by a newline. Runs of blank
// lines collapse to one.
func CleanMarkdown(s string) string {
	src := []byte(strings.ReplaceAll(s, "\r\n", "\n"))
	doc := md.Parser().Parse(gmtext.NewReader(src))

	var b bytes.Buffer
	writeBlocks(&b, doc, src, "\n\n")
	return strings.TrimSpace(blankLines.ReplaceAllString(b.String(), "\n\n"))
}

func writeBlocks(b *bytes.Buffer, parent ast.Node, src []byte, sep string) {
	first := true
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		var part bytes.Buffer
		switch n := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
			continue
		case *ast.List, *ast.ListItem:
			writeBlocks(&part, n, src, "\n")
		case *ast.Blockquote:
			writeBlocks(&part, n, src, "\n\n")
		default:
			writeInline(&part, n, src)
		}

		text := bytes.TrimSpace(part.Bytes())
		if len(text) == 0 {
			continue
		}
		if !first {
			b.WriteString(sep)
		}
		b.Write(text)
		first = false
	}
}

func writeInline(b *bytes.Buffer, parent ast.Node, src []byte) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			v := n.Segment.Value(src)
			if !n.IsRaw() {
				v = util.ResolveNumericReferences(util.ResolveEntityNames(util.UnescapePunctuations(v)))
			}
			b.Write(v)
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.CodeSpan:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				t, ok := c.(*ast.Text)
				if !ok {
					continue
				}
				b.Write(bytes.ReplaceAll(t.Segment.Value(src), []byte("\n"), []byte(" ")))
			}
		case *ast.AutoLink:
			b.Write(n.Label(src))
		case *ast.RawHTML:
		default:
			writeInline(b, n, src)
		}
	}
}

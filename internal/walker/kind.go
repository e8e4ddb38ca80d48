package walker

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Kind classifies a page by how it is rendered.
type Kind int

const (
	KindUnknown Kind = iota
	// KindMarkdown pages are rendered with goldmark.
	KindMarkdown
	// KindFragment pages are HTML bodies wrapped in the layout.
	KindFragment
	// KindDocument pages are complete HTML documents copied verbatim.
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindMarkdown:
		return "markdown"
	case KindFragment:
		return "fragment"
	case KindDocument:
		return "document"
	default:
		return "unknown"
	}
}

// DetectKind classifies a page from its name and the first bytes of its content.
func DetectKind(name string, head []byte) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return KindMarkdown
	case ".html", ".htm":
		if isDocument(head) {
			return KindDocument
		}
		return KindFragment
	default:
		return KindUnknown
	}
}

// isDocument reports whether head starts a full HTML document.
func isDocument(head []byte) bool {
	head = bytes.TrimLeft(head, " \t\r\n\ufeff")
	lower := bytes.ToLower(head)
	return bytes.HasPrefix(lower, []byte("<!doctype")) || bytes.HasPrefix(lower, []byte("<html"))
}

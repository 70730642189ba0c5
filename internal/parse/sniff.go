package parse

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Sniffer classifies raw content when no media type is declared. Sniff
// is pure: it returns a media type or "" and has no side effects.
type Sniffer interface {
	Sniff(content string) string
}

// MimeSniffer detects the media type from content magic.
type MimeSniffer struct{}

// Sniff returns text/html or text/xml for recognized markup, "" for
// anything else.
func (MimeSniffer) Sniff(content string) string {
	trimmed := strings.TrimSpace(content)
	mt := mimetype.Detect([]byte(trimmed))
	switch {
	case mt.Is(MediaTypeHTML):
		return MediaTypeHTML
	case mt.Is(MediaTypeXML), mt.Is(MediaTypeAppXML):
		return MediaTypeXML
	}
	// mimetype only recognizes XML with an <?xml prologue; bare markup
	// opening with a tag it does not know still classifies as XML here.
	if strings.HasPrefix(trimmed, "<") && strings.HasSuffix(trimmed, ">") {
		return MediaTypeXML
	}
	return ""
}

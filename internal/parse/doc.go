// Package parse turns raw content into node trees.
//
// Built on specialized libraries:
//   - x/net/html: HTML parsing with charset-aware readers
//   - chardet: character encoding detection
//   - mimetype: media-type sniffing from content magic
//   - bluemonday: optional sanitization before parsing
//
// XML media types are decoded with encoding/xml into an element-kind
// fragment; the session layer wraps fragments into canonical documents.
package parse

// Package content holds the block-structured article document model and the
// renderer that turns stored content into display nodes. Articles written with
// the editor are saved as an EditorJS-flavoured document; older rows carry the
// same blocks in a handful of historical shapes, all of which parse here.
package content

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"
)

// Version is the schema tag embedded in every serialized document.
const Version = "2.26.5"

// Document is the wire form of an article body: an ordered block sequence
// with a timestamp and schema tag. An empty Blocks slice is a valid document.
type Document struct {
	Time    int64   `json:"time"`
	Version string  `json:"version"`
	Blocks  []Block `json:"blocks"`
}

// Block is one entry of the document. The union is deliberately loose: the
// editor writes payloads under "data", the flattened block rows keep them
// under "content", and the oldest articles carry fields at the top level.
// All three spots are retained verbatim so the renderer can pick per type.
type Block struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`

	// Legacy top-level fields (pre-block-table articles). Held raw so a
	// wrong-shaped value degrades that one field to its default instead of
	// failing the whole document parse.
	URL     json.RawMessage `json:"url,omitempty"`
	Src     json.RawMessage `json:"src,omitempty"`
	Caption json.RawMessage `json:"caption,omitempty"`
	Level   json.RawMessage `json:"level,omitempty"`
}

// LegacyURL returns the top-level url, or "" when absent or not a string.
func (b Block) LegacyURL() string {
	s, _ := stringOf(b.URL)
	return s
}

// LegacySrc returns the top-level src, or "" when absent or not a string.
func (b Block) LegacySrc() string {
	s, _ := stringOf(b.Src)
	return s
}

// LegacyCaption returns the top-level caption, or "" when absent or not a
// string.
func (b Block) LegacyCaption() string {
	s, _ := stringOf(b.Caption)
	return s
}

// LegacyLevel returns the top-level heading level, or 0 when absent or not
// a number.
func (b Block) LegacyLevel() int {
	if len(b.Level) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(b.Level, &f); err != nil {
		return 0
	}
	return int(f)
}

// Block type discriminators, including the accepted aliases
// (text vs paragraph, heading vs header).
const (
	TypeText      = "text"
	TypeParagraph = "paragraph"
	TypeHeader    = "header"
	TypeHeading   = "heading"
	TypeQuote     = "quote"
	TypeImage     = "image"
	TypeList      = "list"
	TypeChecklist = "checklist"
	TypeVideo     = "video"
	TypeCode      = "code"
	TypeSeparator = "separator"
)

// ParseContent interprets a stored content column. It accepts every shape
// found in the wild:
//
//   - a JSON object with a "blocks" array (current format)
//   - a bare JSON array of blocks
//   - a JSON-encoded string wrapping either of the above
//   - anything else, returned as a single raw-text pseudo document
//
// The second return reports whether raw parsed as a structured document.
// ParseContent never fails; garbage in yields a raw-text document out.
func ParseContent(raw []byte) (*Document, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return &Document{Version: Version, Blocks: []Block{}}, true
	}

	// A JSON string wraps the real payload; unwrap one level and retry.
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return rawTextDocument(string(raw)), false
		}
		return parseStructured([]byte(inner), string(raw))
	}

	return parseStructured(trimmed, string(raw))
}

func parseStructured(data []byte, original string) (*Document, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return rawTextDocument(original), false
	}

	switch trimmed[0] {
	case '{':
		var doc Document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return rawTextDocument(original), false
		}
		if doc.Blocks == nil {
			doc.Blocks = []Block{}
		}
		return &doc, true
	case '[':
		var blocks []Block
		if err := json.Unmarshal(trimmed, &blocks); err != nil {
			return rawTextDocument(original), false
		}
		return &Document{Version: Version, Blocks: blocks}, true
	default:
		// Plain text that never was JSON.
		return rawTextDocument(original), false
	}
}

// rawTextDocument wraps unparseable content so the caller still gets a
// renderable document. The single pseudo block keeps the original text.
func rawTextDocument(text string) *Document {
	data, _ := json.Marshal(map[string]string{"text": text})
	return &Document{
		Version: Version,
		Blocks:  []Block{{Type: "raw", Data: data}},
	}
}

// Marshal serializes the document back to its wire form.
func (d *Document) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// Truncate cuts s after at most limit bytes, backing up so a multi-byte
// rune is never split.
func Truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// stringField extracts a string key from a raw JSON object. Returns "" when
// raw is absent, not an object, or the key is missing or not a string.
func stringField(raw json.RawMessage, key string) string {
	obj := objectOf(raw)
	if obj == nil {
		return ""
	}
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

// objectOf decodes raw as a JSON object, or nil.
func objectOf(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

// stringOf decodes raw as a JSON string, or "".
func stringOf(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

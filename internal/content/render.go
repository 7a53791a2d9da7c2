package content

import (
	"encoding/json"
	"strings"
)

// NodeKind labels what a display node is. Handlers and frontends switch on
// this instead of re-implementing block dispatch.
type NodeKind string

const (
	NodeParagraph        NodeKind = "paragraph"
	NodeHeading          NodeKind = "heading"
	NodeQuote            NodeKind = "quote"
	NodeImage            NodeKind = "image"
	NodeImagePlaceholder NodeKind = "image-placeholder"
	NodeList             NodeKind = "list"
	NodeChecklist        NodeKind = "checklist"
	NodeVideoEmbed       NodeKind = "video-embed"
	NodeVideo            NodeKind = "video"
	NodeVideoPlaceholder NodeKind = "video-placeholder"
	NodeCode             NodeKind = "code"
	NodeSeparator        NodeKind = "separator"
	NodeRawText          NodeKind = "raw-text"
	NodeUnknown          NodeKind = "unknown"
)

// Video providers recognized by URL substring.
const (
	ProviderYouTube = "youtube"
	ProviderVimeo   = "vimeo"
)

// ListItem is one entry of a list or checklist node.
type ListItem struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked,omitempty"`
}

// Node is one renderable unit. Only the fields relevant to its Kind are set.
type Node struct {
	Kind      NodeKind   `json:"kind"`
	Text      string     `json:"text,omitempty"`
	Level     int        `json:"level,omitempty"`
	Caption   string     `json:"caption,omitempty"`
	Alignment string     `json:"alignment,omitempty"`
	Src       string     `json:"src,omitempty"`
	Alt       string     `json:"alt,omitempty"`
	Style     string     `json:"style,omitempty"`
	Items     []ListItem `json:"items,omitempty"`
	Provider  string     `json:"provider,omitempty"`
	EmbedID   string     `json:"embed_id,omitempty"`
	EmbedURL  string     `json:"embed_url,omitempty"`
	Code      string     `json:"code,omitempty"`

	// Raw carries the serialized block for the unknown-type fallback so the
	// reader can at least see what was stored.
	Raw string `json:"raw,omitempty"`
}

// RenderContent parses a stored content column and renders it. Never fails:
// unparseable content comes back as a single raw-text node.
func RenderContent(raw []byte) []Node {
	doc, _ := ParseContent(raw)
	return RenderDocument(doc)
}

// RenderDocument maps a document to its ordered display nodes, one per block.
// It is pure and total: malformed blocks degrade to defaults or fallbacks,
// never to an error.
func RenderDocument(doc *Document) []Node {
	if doc == nil {
		return []Node{}
	}
	nodes := make([]Node, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		nodes = append(nodes, renderBlock(b))
	}
	return nodes
}

func renderBlock(b Block) Node {
	switch b.Type {
	case TypeText:
		return renderText(b)
	case TypeParagraph:
		return renderParagraph(b)
	case TypeHeader:
		return renderHeader(b)
	case TypeHeading:
		return renderHeading(b)
	case TypeQuote:
		return renderQuote(b)
	case TypeImage:
		return renderImage(b)
	case TypeList:
		return renderList(b)
	case TypeChecklist:
		return renderChecklist(b)
	case TypeVideo:
		return renderVideo(b)
	case TypeCode:
		return renderCode(b)
	case TypeSeparator:
		return Node{Kind: NodeSeparator}
	case "raw":
		// Pseudo block produced by ParseContent for non-JSON content.
		return Node{Kind: NodeRawText, Text: stringField(b.Data, "text")}
	default:
		raw, _ := json.Marshal(b)
		return Node{
			Kind: NodeUnknown,
			Text: "Unknown block type: " + b.Type,
			Raw:  string(raw),
		}
	}
}

// renderText handles the "text" discriminator: a paragraph whose payload is a
// bare string, stored under "content" by the flattened rows and under "data"
// by the editor's serializer. Both aliases produce the same paragraph node.
func renderText(b Block) Node {
	if s, ok := stringOf(b.Content); ok {
		return Node{Kind: NodeParagraph, Text: s}
	}
	if obj := objectOf(b.Content); obj != nil {
		enc, _ := json.Marshal(obj)
		return Node{Kind: NodeParagraph, Text: string(enc)}
	}
	if s, ok := stringOf(b.Data); ok {
		return Node{Kind: NodeParagraph, Text: s}
	}
	return Node{Kind: NodeParagraph, Text: ""}
}

// renderParagraph handles the "paragraph" discriminator: payload under
// data.text, with the text-style content fallbacks behind it.
func renderParagraph(b Block) Node {
	if text := stringField(b.Data, "text"); text != "" {
		return Node{Kind: NodeParagraph, Text: text}
	}
	return renderText(b)
}

func renderHeader(b Block) Node {
	level := 2
	if obj := objectOf(b.Data); obj != nil {
		if f, ok := obj["level"].(float64); ok {
			level = int(f)
		}
	}
	if level < 1 || level > 6 {
		level = 2
	}
	return Node{Kind: NodeHeading, Level: level, Text: stringField(b.Data, "text")}
}

// renderHeading handles the alias shape with a top-level level and a string
// content payload.
func renderHeading(b Block) Node {
	level := b.LegacyLevel()
	if level < 1 || level > 6 {
		level = 2
	}
	text, _ := stringOf(b.Content)
	return Node{Kind: NodeHeading, Level: level, Text: text}
}

func renderQuote(b Block) Node {
	alignment := stringField(b.Data, "alignment")
	switch alignment {
	case "left", "center", "right":
	default:
		alignment = "left"
	}
	return Node{
		Kind:      NodeQuote,
		Text:      stringField(b.Data, "text"),
		Caption:   stringField(b.Data, "caption"),
		Alignment: alignment,
	}
}

// renderImage resolves the image source across all historical payload shapes.
// Lookup order: explicit top-level url/src, then content.src/content.url,
// then the legacy data.file.url. No source means an explicit placeholder,
// never a broken image node.
func renderImage(b Block) Node {
	src := b.LegacyURL()
	if src == "" {
		src = b.LegacySrc()
	}
	if src == "" {
		src = stringField(b.Content, "src")
	}
	if src == "" {
		src = stringField(b.Content, "url")
	}
	if src == "" {
		if file := objectOf(b.Data); file != nil {
			if f, ok := file["file"].(map[string]any); ok {
				if u, ok := f["url"].(string); ok {
					src = u
				}
			}
		}
	}
	if src == "" {
		return Node{Kind: NodeImagePlaceholder, Text: "missing image source"}
	}

	caption := b.LegacyCaption()
	if caption == "" {
		caption = stringField(b.Content, "caption")
	}
	if caption == "" {
		caption = stringField(b.Content, "alt")
	}
	if caption == "" {
		caption = stringField(b.Data, "caption")
	}
	return Node{Kind: NodeImage, Src: src, Alt: caption, Caption: caption}
}

func renderList(b Block) Node {
	style := "unordered"
	if stringField(b.Data, "style") == "ordered" {
		style = "ordered"
	}
	return Node{Kind: NodeList, Style: style, Items: dataItems(b)}
}

func renderChecklist(b Block) Node {
	return Node{Kind: NodeChecklist, Items: dataItems(b)}
}

// dataItems extracts data.items tolerantly: plain strings and {text, checked}
// objects are both accepted, anything else is skipped.
func dataItems(b Block) []ListItem {
	items := []ListItem{}
	obj := objectOf(b.Data)
	if obj == nil {
		return items
	}
	list, ok := obj["items"].([]any)
	if !ok {
		return items
	}
	for _, entry := range list {
		switch v := entry.(type) {
		case string:
			items = append(items, ListItem{Text: v})
		case map[string]any:
			item := ListItem{}
			if s, ok := v["text"].(string); ok {
				item.Text = s
			}
			if c, ok := v["checked"].(bool); ok {
				item.Checked = c
			}
			items = append(items, item)
		}
	}
	return items
}

func renderVideo(b Block) Node {
	url := stringField(b.Data, "url")
	if url == "" {
		url = stringField(b.Content, "url")
	}
	if url == "" {
		url = b.LegacyURL()
	}
	if url == "" {
		return Node{Kind: NodeVideoPlaceholder, Text: "missing video URL"}
	}

	if strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be") {
		id := youtubeID(url)
		return Node{
			Kind:     NodeVideoEmbed,
			Provider: ProviderYouTube,
			EmbedID:  id,
			EmbedURL: "https://www.youtube.com/embed/" + id,
		}
	}
	if strings.Contains(url, "vimeo.com") {
		id := vimeoID(url)
		return Node{
			Kind:     NodeVideoEmbed,
			Provider: ProviderVimeo,
			EmbedID:  id,
			EmbedURL: "https://player.vimeo.com/video/" + id,
		}
	}
	return Node{Kind: NodeVideo, Src: url}
}

// youtubeID extracts the video id by substring, matching the stored data the
// editor produced: "watch?v=" takes the v value up to the next "&",
// "youtu.be/" takes the path segment up to the next "?".
func youtubeID(url string) string {
	if _, after, found := strings.Cut(url, "watch?v="); found {
		id, _, _ := strings.Cut(after, "&")
		return id
	}
	if _, after, found := strings.Cut(url, "youtu.be/"); found {
		id, _, _ := strings.Cut(after, "?")
		return id
	}
	return ""
}

// vimeoID is the path segment after "vimeo.com/".
func vimeoID(url string) string {
	_, after, _ := strings.Cut(url, "vimeo.com/")
	return after
}

// renderCode resolves the code payload: a bare string under data or content,
// or a structured payload carrying a "code" field. Structured payloads with
// no code field are pretty-printed verbatim.
func renderCode(b Block) Node {
	if s, ok := stringOf(b.Data); ok {
		return Node{Kind: NodeCode, Code: s}
	}
	if code := stringField(b.Data, "code"); code != "" {
		return Node{Kind: NodeCode, Code: code}
	}
	if s, ok := stringOf(b.Content); ok {
		return Node{Kind: NodeCode, Code: s}
	}
	if code := stringField(b.Content, "code"); code != "" {
		return Node{Kind: NodeCode, Code: code}
	}
	if obj := objectOf(b.Content); obj != nil {
		enc, _ := json.MarshalIndent(obj, "", "  ")
		return Node{Kind: NodeCode, Code: string(enc)}
	}
	if obj := objectOf(b.Data); obj != nil {
		enc, _ := json.MarshalIndent(obj, "", "  ")
		return Node{Kind: NodeCode, Code: string(enc)}
	}
	return Node{Kind: NodeCode, Code: ""}
}

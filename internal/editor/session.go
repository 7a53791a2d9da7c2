// Package editor implements the single-author article composition session:
// an ordered, mutable list of typed blocks plus the active-block pointer,
// mutated by discrete user actions and serialized into the content document
// wire shape on save. All operations are synchronous, total functions; the
// only asynchronous collaborator is the image upload, whose result is
// committed through ResolveImageUpload after the fact.
package editor

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alihfala/mando-articles/internal/content"
)

// BlockType enumerates the block palette.
type BlockType string

const (
	BlockText      BlockType = "text"
	BlockHeader    BlockType = "header"
	BlockQuote     BlockType = "quote"
	BlockImage     BlockType = "image"
	BlockVideo     BlockType = "video"
	BlockList      BlockType = "list"
	BlockChecklist BlockType = "checklist"
	BlockCode      BlockType = "code"
	BlockSeparator BlockType = "separator"
)

// FormatKind is an inline formatting action over a text selection.
type FormatKind string

const (
	FormatBold   FormatKind = "bold"
	FormatItalic FormatKind = "italic"
	FormatLink   FormatKind = "link"
)

// Overlay is the contextual UI state. At most one overlay is open at a time;
// any block focus change dismisses it.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayBlockMenu
	OverlayFormatToolbar
)

// Block is an editable block. ID is a session-local addressing token: never
// reused after delete within a session and not guaranteed stable across a
// save/reload round trip.
type Block struct {
	ID      string
	Type    BlockType
	Content any
}

// Selection is a text range captured inside one block. Offsets index into the
// payload string as it was at capture time and are not revalidated against
// later edits.
type Selection struct {
	BlockID string
	Start   int
	End     int
	Text    string
}

// Session is the editor state for one article. Not safe for concurrent use;
// a session belongs to exactly one author.
type Session struct {
	Title         string
	FeaturedImage string
	ExcerptText   string

	blocks    []Block
	activeID  string
	overlay   Overlay
	selection *Selection
}

// NewSession starts a session with a single empty text block, active.
func NewSession() *Session {
	first := Block{ID: newBlockID(), Type: BlockText, Content: ""}
	return &Session{
		blocks:   []Block{first},
		activeID: first.ID,
	}
}

func newBlockID() string {
	return uuid.New().String()
}

// emptyPayload is the default payload for a freshly inserted block.
func emptyPayload(t BlockType) any {
	switch t {
	case BlockText, BlockCode:
		return ""
	case BlockImage:
		return map[string]any{"src": "", "alt": ""}
	case BlockVideo:
		return map[string]any{"url": ""}
	case BlockHeader:
		return map[string]any{"text": "", "level": 2}
	case BlockQuote:
		return map[string]any{"text": "", "caption": "", "alignment": "left"}
	case BlockList:
		return map[string]any{"style": "unordered", "items": []any{}}
	case BlockChecklist:
		return map[string]any{"items": []any{}}
	default:
		return map[string]any{}
	}
}

// Blocks returns the current block sequence in order.
func (s *Session) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Len is the current block count.
func (s *Session) Len() int { return len(s.blocks) }

// ActiveID is the id of the focused block.
func (s *Session) ActiveID() string { return s.activeID }

// ActiveOverlay reports which contextual overlay is open.
func (s *Session) ActiveOverlay() Overlay { return s.overlay }

// SetActive moves focus to the given block and dismisses any open overlay.
// Unknown ids are ignored.
func (s *Session) SetActive(id string) {
	if s.indexOf(id) < 0 {
		return
	}
	s.activeID = id
	s.overlay = OverlayNone
}

// OpenBlockMenu opens the block-insert menu, closing the format toolbar.
func (s *Session) OpenBlockMenu() { s.overlay = OverlayBlockMenu }

// OpenFormatToolbar opens the inline-format toolbar, closing the block menu.
func (s *Session) OpenFormatToolbar() { s.overlay = OverlayFormatToolbar }

// CloseOverlay dismisses whichever overlay is open.
func (s *Session) CloseOverlay() { s.overlay = OverlayNone }

func (s *Session) indexOf(id string) int {
	for i, b := range s.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// InsertBlock creates a block of the given type with its empty default
// payload immediately after the active block and focuses it. The sequence
// grows by exactly one; the relative order of all other blocks is preserved.
func (s *Session) InsertBlock(t BlockType) string {
	at := s.indexOf(s.activeID) + 1
	return s.InsertBlockAt(t, at)
}

// InsertBlockAt inserts at an explicit index, clamped into range.
func (s *Session) InsertBlockAt(t BlockType, at int) string {
	if at < 0 {
		at = 0
	}
	if at > len(s.blocks) {
		at = len(s.blocks)
	}
	block := Block{ID: newBlockID(), Type: t, Content: emptyPayload(t)}
	s.blocks = append(s.blocks, Block{})
	copy(s.blocks[at+1:], s.blocks[at:])
	s.blocks[at] = block
	s.activeID = block.ID
	s.overlay = OverlayNone
	return block.ID
}

// DeleteBlock removes the block. The only remaining block is never removed;
// its payload is cleared to the empty default for its type instead. After a
// real removal, focus moves to the block at min(deletedIndex, newLen-1).
// Unknown ids are a no-op.
func (s *Session) DeleteBlock(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	if len(s.blocks) == 1 {
		s.blocks[0].Content = emptyPayload(s.blocks[0].Type)
		return
	}
	s.blocks = append(s.blocks[:idx], s.blocks[idx+1:]...)
	next := idx
	if next > len(s.blocks)-1 {
		next = len(s.blocks) - 1
	}
	s.activeID = s.blocks[next].ID
	s.overlay = OverlayNone
}

// EditBlockContent replaces the payload of the matching block. A call with an
// unknown id is valid and does nothing.
func (s *Session) EditBlockContent(id string, payload any) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.blocks[idx].Content = payload
}

// SplitOnEnter is the Enter-without-modifier action in a text block. It does
// not split the text at the cursor: it appends a fresh empty text block right
// after the current one, matching the editor users already know.
func (s *Session) SplitOnEnter() string {
	return s.InsertBlock(BlockText)
}

// BackspaceMerge is the Backspace action in a block whose content is already
// empty: the block is deleted, inheriting the single-block floor rule.
// Backspace in a non-empty block is ordinary text editing, not our concern.
func (s *Session) BackspaceMerge(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	if !payloadEmpty(s.blocks[idx].Content) {
		return
	}
	s.DeleteBlock(id)
}

func payloadEmpty(payload any) bool {
	switch v := payload.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}

// SetSelection captures a selection range and opens the format toolbar.
// Empty selections clear instead.
func (s *Session) SetSelection(sel Selection) {
	if sel.Text == "" || sel.Start >= sel.End {
		s.ClearSelection()
		return
	}
	s.selection = &sel
	s.overlay = OverlayFormatToolbar
}

// ClearSelection drops the captured range and closes the toolbar.
func (s *Session) ClearSelection() {
	s.selection = nil
	if s.overlay == OverlayFormatToolbar {
		s.overlay = OverlayNone
	}
}

// Selection returns the captured range, if any.
func (s *Session) Selection() *Selection {
	return s.selection
}

// ApplyInlineFormat wraps the captured selection in inline markup inside the
// selected block's text payload: before + wrap(selected) + after. The link
// format asks promptURL for an href; an empty answer cancels the whole
// operation. Requires a captured selection over a text block; anything else
// is a no-op. Offsets are applied as captured — a selection gone stale
// against later edits is clamped, not revalidated.
func (s *Session) ApplyInlineFormat(kind FormatKind, promptURL func() string) {
	if s.selection == nil {
		return
	}
	sel := *s.selection
	idx := s.indexOf(sel.BlockID)
	if idx < 0 || s.blocks[idx].Type != BlockText {
		return
	}
	text, ok := s.blocks[idx].Content.(string)
	if !ok {
		return
	}

	var wrapped string
	switch kind {
	case FormatBold:
		wrapped = "<strong>" + sel.Text + "</strong>"
	case FormatItalic:
		wrapped = "<em>" + sel.Text + "</em>"
	case FormatLink:
		if promptURL == nil {
			return
		}
		url := promptURL()
		if url == "" {
			return
		}
		wrapped = `<a href="` + url + `" target="_blank" rel="noopener noreferrer">` + sel.Text + `</a>`
	default:
		return
	}

	start, end := sel.Start, sel.End
	if start < 0 {
		start = 0
	}
	if start > len(text) {
		start = len(text)
	}
	if end < start {
		end = start
	}
	if end > len(text) {
		end = len(text)
	}
	s.blocks[idx].Content = text[:start] + wrapped + text[end:]
	s.ClearSelection()
}

// ResolveImageUpload commits an asynchronous upload result into an image
// block. A failed upload never calls this, leaving the block's payload empty
// so the user can retry; nothing else in the document is touched either way.
func (s *Session) ResolveImageUpload(id, url, alt string) {
	idx := s.indexOf(id)
	if idx < 0 || s.blocks[idx].Type != BlockImage {
		return
	}
	s.blocks[idx].Content = map[string]any{"src": url, "alt": alt}
}

// Serialize produces the wire-form document handed to the article store:
// deterministic given the session state except for the embedded timestamp.
func (s *Session) Serialize(now time.Time) *content.Document {
	blocks := make([]content.Block, 0, len(s.blocks))
	for _, b := range s.blocks {
		data, err := json.Marshal(b.Content)
		if err != nil {
			data = nil
		}
		blocks = append(blocks, content.Block{
			ID:   b.ID,
			Type: string(b.Type),
			Data: data,
		})
	}
	return &content.Document{
		Time:    now.UnixMilli(),
		Version: content.Version,
		Blocks:  blocks,
	}
}

// Excerpt derives a summary from the first two text blocks when the author
// did not write one: joined, trimmed, capped at 160 characters.
func (s *Session) Excerpt() string {
	if s.ExcerptText != "" {
		return s.ExcerptText
	}
	var parts []string
	for _, b := range s.blocks {
		if b.Type != BlockText {
			continue
		}
		if text, ok := b.Content.(string); ok {
			parts = append(parts, text)
		}
		if len(parts) == 2 {
			break
		}
	}
	text := strings.TrimSpace(strings.Join(parts, " "))
	if len(text) > 160 {
		return content.Truncate(text, 157) + "..."
	}
	return text
}

package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func renderOne(t *testing.T, b Block) Node {
	t.Helper()
	nodes := RenderDocument(&Document{Blocks: []Block{b}})
	assert.Len(t, nodes, 1)
	return nodes[0]
}

func TestRenderText_ContentString(t *testing.T) {
	node := renderOne(t, Block{Type: "text", Content: json.RawMessage(`"hello <strong>world</strong>"`)})

	assert.Equal(t, NodeParagraph, node.Kind)
	assert.Equal(t, "hello <strong>world</strong>", node.Text)
}

func TestRenderText_DataStringFromEditorSerializer(t *testing.T) {
	node := renderOne(t, Block{Type: "text", Data: json.RawMessage(`"typed in the editor"`)})

	assert.Equal(t, NodeParagraph, node.Kind)
	assert.Equal(t, "typed in the editor", node.Text)
}

func TestRenderParagraph_DataText(t *testing.T) {
	node := renderOne(t, Block{Type: "paragraph", Data: json.RawMessage(`{"text":"a paragraph"}`)})

	assert.Equal(t, NodeParagraph, node.Kind)
	assert.Equal(t, "a paragraph", node.Text)
}

func TestRenderParagraph_MissingDataFallsBackToContent(t *testing.T) {
	node := renderOne(t, Block{Type: "paragraph", Content: json.RawMessage(`"legacy content"`)})

	assert.Equal(t, NodeParagraph, node.Kind)
	assert.Equal(t, "legacy content", node.Text)
}

func TestRenderHeader_LevelDefaultsTo2(t *testing.T) {
	missing := renderOne(t, Block{Type: "header", Data: json.RawMessage(`{"text":"T"}`)})
	invalid := renderOne(t, Block{Type: "header", Data: json.RawMessage(`{"text":"T","level":9}`)})
	valid := renderOne(t, Block{Type: "header", Data: json.RawMessage(`{"text":"T","level":3}`)})

	assert.Equal(t, 2, missing.Level)
	assert.Equal(t, 2, invalid.Level)
	assert.Equal(t, 3, valid.Level)
	assert.Equal(t, NodeHeading, valid.Kind)
	assert.Equal(t, "T", valid.Text)
}

func TestRenderHeading_AliasWithTopLevelFields(t *testing.T) {
	node := renderOne(t, Block{Type: "heading", Level: json.RawMessage(`1`), Content: json.RawMessage(`"Big"`)})

	assert.Equal(t, NodeHeading, node.Kind)
	assert.Equal(t, 1, node.Level)
	assert.Equal(t, "Big", node.Text)
}

func TestRenderQuote_AlignmentDefaultsLeft(t *testing.T) {
	node := renderOne(t, Block{Type: "quote", Data: json.RawMessage(`{"text":"q","caption":"c","alignment":"diagonal"}`)})

	assert.Equal(t, NodeQuote, node.Kind)
	assert.Equal(t, "q", node.Text)
	assert.Equal(t, "c", node.Caption)
	assert.Equal(t, "left", node.Alignment)

	centered := renderOne(t, Block{Type: "quote", Data: json.RawMessage(`{"text":"q","alignment":"center"}`)})
	assert.Equal(t, "center", centered.Alignment)
}

func TestRenderImage_LegacyFileURLShape(t *testing.T) {
	node := renderOne(t, Block{Type: "image", Data: json.RawMessage(`{"file":{"url":"https://cdn.example.com/a.png"},"caption":"A"}`)})

	assert.Equal(t, NodeImage, node.Kind)
	assert.Equal(t, "https://cdn.example.com/a.png", node.Src)
	assert.Equal(t, "A", node.Caption)
}

func TestRenderImage_ContentSrcShape(t *testing.T) {
	node := renderOne(t, Block{Type: "image", Content: json.RawMessage(`{"src":"https://cdn.example.com/b.png","alt":"B"}`)})

	assert.Equal(t, NodeImage, node.Kind)
	assert.Equal(t, "https://cdn.example.com/b.png", node.Src)
	assert.Equal(t, "B", node.Alt)
}

func TestRenderImage_TopLevelURLWinsOverNested(t *testing.T) {
	node := renderOne(t, Block{
		Type:    "image",
		URL:     json.RawMessage(`"https://cdn.example.com/top.png"`),
		Content: json.RawMessage(`{"src":"https://cdn.example.com/nested.png"}`),
	})

	assert.Equal(t, "https://cdn.example.com/top.png", node.Src)
}

func TestRenderImage_MissingSourceIsPlaceholder(t *testing.T) {
	node := renderOne(t, Block{Type: "image", Data: json.RawMessage(`{"caption":"nothing here"}`)})

	assert.Equal(t, NodeImagePlaceholder, node.Kind)
}

func TestRenderList(t *testing.T) {
	node := renderOne(t, Block{Type: "list", Data: json.RawMessage(`{"style":"ordered","items":["one","two"]}`)})

	assert.Equal(t, NodeList, node.Kind)
	assert.Equal(t, "ordered", node.Style)
	assert.Equal(t, []ListItem{{Text: "one"}, {Text: "two"}}, node.Items)

	unstyled := renderOne(t, Block{Type: "list", Data: json.RawMessage(`{"items":["x"]}`)})
	assert.Equal(t, "unordered", unstyled.Style)
}

func TestRenderChecklist(t *testing.T) {
	node := renderOne(t, Block{Type: "checklist", Data: json.RawMessage(`{"items":[{"text":"done","checked":true},{"text":"todo","checked":false}]}`)})

	assert.Equal(t, NodeChecklist, node.Kind)
	assert.Equal(t, []ListItem{{Text: "done", Checked: true}, {Text: "todo"}}, node.Items)
}

func TestRenderVideo_YouTubeShortLink(t *testing.T) {
	node := renderOne(t, Block{Type: "video", Data: json.RawMessage(`{"url":"https://youtu.be/dQw4w9WgXcQ?t=5"}`)})

	assert.Equal(t, NodeVideoEmbed, node.Kind)
	assert.Equal(t, ProviderYouTube, node.Provider)
	assert.Equal(t, "dQw4w9WgXcQ", node.EmbedID)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", node.EmbedURL)
}

func TestRenderVideo_YouTubeWatchLink(t *testing.T) {
	node := renderOne(t, Block{Type: "video", Data: json.RawMessage(`{"url":"https://www.youtube.com/watch?v=abc123&list=PL9"}`)})

	assert.Equal(t, "abc123", node.EmbedID)
}

func TestRenderVideo_Vimeo(t *testing.T) {
	node := renderOne(t, Block{Type: "video", Content: json.RawMessage(`{"url":"https://vimeo.com/76979871"}`)})

	assert.Equal(t, NodeVideoEmbed, node.Kind)
	assert.Equal(t, ProviderVimeo, node.Provider)
	assert.Equal(t, "76979871", node.EmbedID)
	assert.Equal(t, "https://player.vimeo.com/video/76979871", node.EmbedURL)
}

func TestRenderVideo_GenericSource(t *testing.T) {
	node := renderOne(t, Block{Type: "video", Data: json.RawMessage(`{"url":"https://media.example.com/clip.mp4"}`)})

	assert.Equal(t, NodeVideo, node.Kind)
	assert.Equal(t, "https://media.example.com/clip.mp4", node.Src)
}

func TestRenderVideo_EmptyURLIsPlaceholder(t *testing.T) {
	node := renderOne(t, Block{Type: "video", Data: json.RawMessage(`{"url":""}`)})

	assert.Equal(t, NodeVideoPlaceholder, node.Kind)
}

func TestRenderCode_Shapes(t *testing.T) {
	fromData := renderOne(t, Block{Type: "code", Data: json.RawMessage(`"fmt.Println(1)"`)})
	fromCodeField := renderOne(t, Block{Type: "code", Content: json.RawMessage(`{"code":"x := 2"}`)})

	assert.Equal(t, NodeCode, fromData.Kind)
	assert.Equal(t, "fmt.Println(1)", fromData.Code)
	assert.Equal(t, "x := 2", fromCodeField.Code)
}

func TestRenderSeparator(t *testing.T) {
	node := renderOne(t, Block{Type: "separator"})

	assert.Equal(t, NodeSeparator, node.Kind)
}

func TestRenderUnknownType_FallbackCarriesRawBlock(t *testing.T) {
	node := renderOne(t, Block{Type: "bogus-type", Data: json.RawMessage(`{"weird":true}`)})

	assert.Equal(t, NodeUnknown, node.Kind)
	assert.Contains(t, node.Text, "bogus-type")
	assert.Contains(t, node.Raw, `"bogus-type"`)
	assert.Contains(t, node.Raw, `"weird":true`)
}

func TestRenderDocument_NilIsEmpty(t *testing.T) {
	assert.Empty(t, RenderDocument(nil))
}

func TestRenderContent_WholePipeline(t *testing.T) {
	raw := []byte(`{"time":1,"version":"2.26.5","blocks":[
		{"type":"header","data":{"text":"Hi","level":1}},
		{"type":"text","data":"first"},
		{"type":"nonsense"}
	]}`)

	nodes := RenderContent(raw)

	assert.Len(t, nodes, 3)
	assert.Equal(t, NodeHeading, nodes[0].Kind)
	assert.Equal(t, NodeParagraph, nodes[1].Kind)
	assert.Equal(t, NodeUnknown, nodes[2].Kind)
}

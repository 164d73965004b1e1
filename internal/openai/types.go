package openai

// Tool types and annotation types understood by the template search.
const (
	ToolWebSearchPreview  = "web_search_preview"
	OutputTypeMessage     = "message"
	AnnotationURLCitation = "url_citation"
	ContentTypeOutputText = "output_text"
)

// Tool configures a hosted tool for a response request.
type Tool struct {
	Type              string `json:"type"`
	SearchContextSize string `json:"search_context_size,omitempty"`
}

// ResponseRequest models the body of POST /responses.
type ResponseRequest struct {
	Model string `json:"model"`
	Tools []Tool `json:"tools,omitempty"`
	Input string `json:"input"`
}

// Response is the subset of the Responses API payload used by the service.
type Response struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Model  string       `json:"model"`
	Output []OutputItem `json:"output"`
}

// OutputItem is one tagged item of a response, e.g. a web_search_call or a message.
type OutputItem struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Status  string         `json:"status,omitempty"`
	Role    string         `json:"role,omitempty"`
	Content []ContentBlock `json:"content,omitempty"`
}

// ContentBlock is a piece of message content carrying text and its annotations.
type ContentBlock struct {
	Type        string       `json:"type"`
	Text        string       `json:"text"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Annotation references a source backing part of the text.
type Annotation struct {
	Type       string `json:"type"`
	URL        string `json:"url,omitempty"`
	Title      string `json:"title,omitempty"`
	StartIndex int    `json:"start_index,omitempty"`
	EndIndex   int    `json:"end_index,omitempty"`
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/template-finder/internal/openai"
)

func messageResponse(annotations ...openai.Annotation) *openai.Response {
	return &openai.Response{
		Output: []openai.OutputItem{
			{Type: "web_search_call", ID: "ws_1"},
			{
				Type: openai.OutputTypeMessage,
				Content: []openai.ContentBlock{
					{Type: openai.ContentTypeOutputText, Text: "Here are some templates", Annotations: annotations},
					{Type: openai.ContentTypeOutputText, Annotations: []openai.Annotation{
						{Type: openai.AnnotationURLCitation, URL: "https://ignored.example.com/second-block", Title: "Ignored"},
					}},
				},
			},
		},
	}
}

func citation(url, title string) openai.Annotation {
	return openai.Annotation{Type: openai.AnnotationURLCitation, URL: url, Title: title}
}

func TestExtractCitations(t *testing.T) {
	resp := messageResponse(
		citation("https://themeforest.net/item/bakery", "Bakery Theme"),
		openai.Annotation{Type: "file_citation", Title: "not a url"},
		citation("https://www.templatemonster.com/cafe", "Cafe Template"),
		citation("https://themeforest.net/item/bakery", "Bakery Theme v2"),
		citation("/relative", "Relative"),
	)

	got, err := ExtractCitations(resp)
	require.NoError(t, err)
	assert.Equal(t, []Citation{
		{URL: "https://themeforest.net/item/bakery", Title: "Bakery Theme v2"},
		{URL: "https://www.templatemonster.com/cafe", Title: "Cafe Template"},
	}, got)
}

func TestExtractCitations_UsesFirstMessageOnly(t *testing.T) {
	resp := &openai.Response{Output: []openai.OutputItem{
		{Type: openai.OutputTypeMessage, Content: []openai.ContentBlock{{Annotations: []openai.Annotation{citation("https://first.example.com/a", "First")}}}},
		{Type: openai.OutputTypeMessage, Content: []openai.ContentBlock{{Annotations: []openai.Annotation{citation("https://second.example.com/b", "Second")}}}},
	}}

	got, err := ExtractCitations(resp)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://first.example.com/a", got[0].URL)
}

func TestExtractCitations_NoAnnotations(t *testing.T) {
	got, err := ExtractCitations(messageResponse())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractCitations_Malformed(t *testing.T) {
	tests := []struct {
		name string
		resp *openai.Response
	}{
		{name: "nil response", resp: nil},
		{name: "no message item", resp: &openai.Response{Output: []openai.OutputItem{{Type: "web_search_call"}}}},
		{name: "empty output", resp: &openai.Response{}},
		{name: "message without content", resp: &openai.Response{Output: []openai.OutputItem{{Type: openai.OutputTypeMessage}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractCitations(tt.resp)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

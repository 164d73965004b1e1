package service

import (
	"errors"
	"fmt"

	"github.com/octobees/template-finder/internal/openai"
)

// ErrMalformedResponse indicates the provider answered without a usable message.
var ErrMalformedResponse = errors.New("malformed provider response")

// Citation is a web source referenced by the provider's answer.
type Citation struct {
	URL   string
	Title string
}

// ExtractCitations collects the url_citation annotations of the first message
// item. Each URL appears once, at the position of its first occurrence, carrying
// the last title seen for it. Citations without an absolute http(s) URL are skipped.
func ExtractCitations(resp *openai.Response) ([]Citation, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", ErrMalformedResponse)
	}

	var message *openai.OutputItem
	for i := range resp.Output {
		if resp.Output[i].Type == openai.OutputTypeMessage {
			message = &resp.Output[i]
			break
		}
	}
	if message == nil {
		return nil, fmt.Errorf("%w: no message item", ErrMalformedResponse)
	}
	if len(message.Content) == 0 {
		return nil, fmt.Errorf("%w: message has no content", ErrMalformedResponse)
	}

	index := make(map[string]int)
	var citations []Citation
	for _, ann := range message.Content[0].Annotations {
		if ann.Type != openai.AnnotationURLCitation || !isAbsoluteHTTPURL(ann.URL) {
			continue
		}
		if pos, ok := index[ann.URL]; ok {
			citations[pos].Title = ann.Title
			continue
		}
		index[ann.URL] = len(citations)
		citations = append(citations, Citation{URL: ann.URL, Title: ann.Title})
	}
	return citations, nil
}

package dto

// Template describes a suggested website template.
type Template struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Features    []string `json:"features"`
}

// SearchResult is the success envelope returned by the template search endpoint.
type SearchResult struct {
	Templates []Template `json:"templates"`
}

// ErrorResponse is the failure envelope returned by the template search endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

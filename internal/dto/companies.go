package dto

// CompanyInfo is the company profile submitted by the template search form.
type CompanyInfo struct {
	Name           string `json:"name"`
	Industry       string `json:"industry"`
	Description    string `json:"description,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
}

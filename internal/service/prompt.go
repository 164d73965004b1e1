package service

import (
	"fmt"
	"strings"

	"github.com/octobees/template-finder/internal/dto"
)

const unspecified = "not specified"

const searchPromptFormat = `Find modern website templates suitable for a company in the %s industry.
Company name: %s.
Target audience: %s.
Company description: %s.
Search the web for real, currently available website templates that fit this business.
Prefer reputable template marketplaces such as ThemeForest, Template Monster or comparable platforms.
Return the specific template URLs together with a short description of each template.`

// BuildSearchPrompt renders the natural-language instruction sent to the AI search provider.
func BuildSearchPrompt(info dto.CompanyInfo) string {
	return fmt.Sprintf(searchPromptFormat,
		orUnspecified(info.Industry),
		orUnspecified(info.Name),
		orUnspecified(info.TargetAudience),
		orUnspecified(strings.TrimSuffix(info.Description, ".")),
	)
}

func orUnspecified(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return unspecified
	}
	return value
}

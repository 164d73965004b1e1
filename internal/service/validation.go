package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/net/idna"

	"github.com/octobees/template-finder/internal/dto"
)

// ErrInvalidInput marks request payloads that cannot be turned into a CompanyInfo.
var ErrInvalidInput = errors.New("invalid input")

// ErrEmptyBody is returned when the request carries no payload.
var ErrEmptyBody error = &InputError{Msg: "empty request body"}

var idnaProfile = idna.Lookup

const rootField = "(root)"

const companyInfoSchema = `{
	"type": "object",
	"required": ["name", "industry"],
	"properties": {
		"name": {"type": "string", "pattern": "\\S"},
		"industry": {"type": "string", "pattern": "\\S"},
		"description": {"type": ["string", "null"]},
		"target_audience": {"type": ["string", "null"]}
	}
}`

var companySchema = mustCompileSchema(companyInfoSchema)

// InputError describes a malformed or incomplete company profile.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// Is lets errors.Is match any InputError against ErrInvalidInput.
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// DecodeCompanyInfo parses and validates a raw request body.
func DecodeCompanyInfo(body []byte) (dto.CompanyInfo, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return dto.CompanyInfo{}, ErrEmptyBody
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return dto.CompanyInfo{}, &InputError{Msg: fmt.Sprintf("invalid JSON body: %v", err)}
	}

	result, err := companySchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return dto.CompanyInfo{}, &InputError{Msg: fmt.Sprintf("validate payload: %v", err)}
	}
	if !result.Valid() {
		return dto.CompanyInfo{}, &InputError{Msg: describeSchemaErrors(result.Errors())}
	}

	var info dto.CompanyInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return dto.CompanyInfo{}, &InputError{Msg: fmt.Sprintf("invalid JSON body: %v", err)}
	}

	info.Name = strings.TrimSpace(info.Name)
	info.Industry = strings.TrimSpace(info.Industry)
	info.Description = strings.TrimSpace(info.Description)
	info.TargetAudience = strings.TrimSpace(info.TargetAudience)
	return info, nil
}

func describeSchemaErrors(errs []gojsonschema.ResultError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		switch {
		case e.Type() == "pattern":
			msgs = append(msgs, e.Field()+" must not be blank")
		case e.Type() == "required", e.Field() == rootField:
			msgs = append(msgs, e.Description())
		default:
			msgs = append(msgs, e.Field()+": "+e.Description())
		}
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

func mustCompileSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile company schema: %v", err))
	}
	return schema
}

// isAbsoluteHTTPURL reports whether raw is an http(s) URL with a resolvable-looking host.
func isAbsoluteHTTPURL(raw string) bool {
	if raw == "" || raw != strings.TrimSpace(raw) {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host, err := idnaProfile.ToASCII(strings.ToLower(u.Hostname()))
	if err != nil {
		return false
	}
	return isDomainValid(host)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

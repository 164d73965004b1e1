package service

import (
	"context"

	"github.com/octobees/template-finder/internal/dto"
	"github.com/octobees/template-finder/internal/entity"
	"github.com/octobees/template-finder/internal/openai"
)

type responseCreatorStub struct {
	resp  *openai.Response
	err   error
	calls int
	last  openai.ResponseRequest
}

func (s *responseCreatorStub) CreateResponse(ctx context.Context, req openai.ResponseRequest) (*openai.Response, error) {
	s.calls++
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type providerFunc func(ctx context.Context, info dto.CompanyInfo) (Suggestion, error)

func (f providerFunc) Suggest(ctx context.Context, info dto.CompanyInfo) (Suggestion, error) {
	return f(ctx, info)
}

type recorderStub struct {
	entries []*entity.TemplateSearch
	err     error
}

func (s *recorderStub) Record(ctx context.Context, search *entity.TemplateSearch) error {
	s.entries = append(s.entries, search)
	return s.err
}

package service

import (
	"context"
	"time"

	"transcript-assistant-be/internal/dto"
	"transcript-assistant-be/internal/entity"
	"transcript-assistant-be/internal/pkg/logger"
	"transcript-assistant-be/internal/pkg/serverutils"
	"transcript-assistant-be/internal/repository/unitofwork"
	"transcript-assistant-be/pkg/llm"
	"transcript-assistant-be/pkg/rag/prompt"
	"transcript-assistant-be/pkg/rag/response"
	"transcript-assistant-be/pkg/styleguide"
)

type IStyleGuideService interface {
	Get(ctx context.Context) (*dto.StyleGuideResponse, error)
	Update(ctx context.Context, req *dto.UpdateStyleGuideRequest) (*dto.StyleGuideResponse, error)
	// Analyze derives a guide from sample text and blends it into the stored one.
	Analyze(ctx context.Context, req *dto.AnalyzeStyleRequest) (*dto.StyleGuideResponse, error)
}

type styleGuideService struct {
	uowFactory unitofwork.RepositoryFactory
	runtime    llm.Runtime
	logger     logger.ILogger
}

func NewStyleGuideService(uowFactory unitofwork.RepositoryFactory, runtime llm.Runtime, log logger.ILogger) IStyleGuideService {
	return &styleGuideService{
		uowFactory: uowFactory,
		runtime:    runtime,
		logger:     log,
	}
}

func (s *styleGuideService) Get(ctx context.Context) (*dto.StyleGuideResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.StyleGuideRepository().FindByName(ctx, entity.DefaultStyleGuideName)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return toStyleGuideResponse(styleguide.Default(), nil, true), nil
	}
	return toStyleGuideResponse(stored.Guide, stored.UpdatedAt, false), nil
}

func (s *styleGuideService) Update(ctx context.Context, req *dto.UpdateStyleGuideRequest) (*dto.StyleGuideResponse, error) {
	guide := fromStyleGuideRequest(req)
	if err := guide.Validate(); err != nil {
		return nil, serverutils.NewBadRequestError(err.Error())
	}
	return s.save(ctx, guide.Normalize())
}

func (s *styleGuideService) Analyze(ctx context.Context, req *dto.AnalyzeStyleRequest) (*dto.StyleGuideResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	raw, err := s.runtime.Generate(ctx, prompt.StyleAnalysis(req.Sample), llm.WithJSONFormat(), llm.WithTemperature(0.2))
	if err != nil {
		return nil, serverutils.NewBadGatewayError(runtimeUnavailableMessage, err)
	}

	analyzed, err := response.ParseStyleGuide(raw)
	if err != nil {
		s.logger.Warn("StyleGuideService", "Unparseable style analysis", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, serverutils.NewBadGatewayError("The model returned an unreadable style analysis. Try again.", err)
	}

	// A guide that was never saved has no content to blend with.
	current := styleguide.StyleGuide{}
	stored, err := uow.StyleGuideRepository().FindByName(ctx, entity.DefaultStyleGuideName)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		current = stored.Guide
	}

	return s.save(ctx, styleguide.Merge(current, analyzed))
}

func (s *styleGuideService) save(ctx context.Context, guide styleguide.StyleGuide) (*dto.StyleGuideResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record := &entity.StyleGuide{
		Name:  entity.DefaultStyleGuideName,
		Guide: guide,
	}
	if err := uow.StyleGuideRepository().Save(ctx, record); err != nil {
		return nil, err
	}
	return toStyleGuideResponse(record.Guide, record.UpdatedAt, false), nil
}

// loadStyleGuide returns the stored guide, or the default one.
func loadStyleGuide(ctx context.Context, uow unitofwork.UnitOfWork) (styleguide.StyleGuide, error) {
	stored, err := uow.StyleGuideRepository().FindByName(ctx, entity.DefaultStyleGuideName)
	if err != nil {
		return styleguide.StyleGuide{}, err
	}
	if stored == nil {
		return styleguide.Default(), nil
	}
	return stored.Guide, nil
}

func fromStyleGuideRequest(req *dto.UpdateStyleGuideRequest) styleguide.StyleGuide {
	return styleguide.StyleGuide{
		Instructions: req.Instructions,
		Tone: styleguide.Tone{
			Formality:  req.Tone.Formality,
			Warmth:     req.Tone.Warmth,
			Enthusiasm: req.Tone.Enthusiasm,
		},
		Keywords: req.Keywords,
		Phrases: styleguide.Phrases{
			Openings:    req.Phrases.Openings,
			Transitions: req.Phrases.Transitions,
			Emphasis:    req.Phrases.Emphasis,
			Closings:    req.Phrases.Closings,
		},
	}
}

func toStyleGuideResponse(g styleguide.StyleGuide, updatedAt *time.Time, isDefault bool) *dto.StyleGuideResponse {
	g = g.Normalize()
	return &dto.StyleGuideResponse{
		Instructions: g.Instructions,
		Tone: dto.ToneDto{
			Formality:  g.Tone.Formality,
			Warmth:     g.Tone.Warmth,
			Enthusiasm: g.Tone.Enthusiasm,
		},
		Keywords: g.Keywords,
		Phrases: dto.PhrasesDto{
			Openings:    g.Phrases.Openings,
			Transitions: g.Phrases.Transitions,
			Emphasis:    g.Phrases.Emphasis,
			Closings:    g.Phrases.Closings,
		},
		IsDefault: isDefault,
		UpdatedAt: updatedAt,
	}
}

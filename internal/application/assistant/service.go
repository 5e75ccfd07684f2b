package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fuadmd/WHH-SBG/internal/domain/directory"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/genai"
)

// fallbackAnalysis is returned when the model cannot be reached or its
// output cannot be used.
const fallbackAnalysis = "Unable to analyze at this time."

// Generator is the slice of the generative model client the assistant needs
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema, out any) error
}

var _ Generator = (*genai.Client)(nil)

// captionSchema constrains template generation to a platform/caption array
var captionSchema = &genai.Schema{
	Type: "ARRAY",
	Items: &genai.Schema{
		Type: "OBJECT",
		Properties: map[string]*genai.Schema{
			"platform": {Type: "STRING"},
			"caption":  {Type: "STRING"},
		},
		Required: []string{"platform", "caption"},
	},
}

// Service produces marketing copy and performance summaries for business
// owners. Model failures degrade to empty results rather than errors, so a
// flaky upstream never breaks the page that embeds them.
type Service struct {
	generator    Generator
	businessRepo directory.BusinessRepository
	logger       *zap.Logger
}

// NewService creates a new assistant Service
func NewService(generator Generator, businessRepo directory.BusinessRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		generator:    generator,
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// CaptionTemplates generates social media post templates for a business.
// Returns an empty slice when generation fails.
func (s *Service) CaptionTemplates(ctx context.Context, businessID uuid.UUID) ([]CaptionTemplate, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Generate 3 creative social media post templates for a small business named %q. "+
			"Description: %s. "+
			"Return a JSON array of objects with \"platform\" (e.g., Instagram, Facebook) and \"caption\" fields.",
		business.Name, business.Description,
	)

	var templates []CaptionTemplate
	if err := s.generator.GenerateStructured(ctx, prompt, captionSchema, &templates); err != nil {
		s.logger.Warn("caption generation failed",
			zap.String("business_id", businessID.String()),
			zap.Error(err))
		return []CaptionTemplate{}, nil
	}
	if templates == nil {
		templates = []CaptionTemplate{}
	}
	return templates, nil
}

// AnalyzePerformance summarizes trends and risk factors across monthly
// reports. Returns a fixed fallback message when generation fails.
func (s *Service) AnalyzePerformance(ctx context.Context, reports []MonthlyReport) (*AnalysisResponse, error) {
	payload, err := json.Marshal(reports)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Analyze the following monthly business reports and provide a short summary "+
			"of performance trends and risk factors: %s",
		payload,
	)

	summary, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn("performance analysis failed", zap.Error(err))
		return &AnalysisResponse{Summary: fallbackAnalysis}, nil
	}
	return &AnalysisResponse{Summary: summary}, nil
}

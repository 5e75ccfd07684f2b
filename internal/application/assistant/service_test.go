package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fuadmd/WHH-SBG/internal/domain/directory"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/genai"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	args := m.Called(ctx, prompt, schema, out)
	return args.Error(0)
}

type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindByIDWithProducts(ctx context.Context, id uuid.UUID) (*directory.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]directory.Business, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.Business, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindAllWithProducts(ctx context.Context) ([]directory.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Business), args.Error(1)
}

func (m *MockBusinessRepository) Save(ctx context.Context, business *directory.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBusinessRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

var (
	_ Generator                    = (*MockGenerator)(nil)
	_ directory.BusinessRepository = (*MockBusinessRepository)(nil)
)

func assistantFixture(t *testing.T) (*Service, *MockGenerator, *MockBusinessRepository) {
	t.Helper()
	generator := &MockGenerator{}
	businesses := &MockBusinessRepository{}
	return NewService(generator, businesses, zap.NewNop()), generator, businesses
}

func newPromptedBusiness(t *testing.T) *directory.Business {
	t.Helper()
	b, err := directory.NewBusiness(uuid.New(), "Mama Tee Kitchen", "Tolu Adebayo", "Food", "Lagos")
	require.NoError(t, err)
	require.NoError(t, b.Update("Mama Tee Kitchen", "", "Home-cooked meals delivered fresh", "Food", "Lagos"))
	b.ClearDomainEvents()
	return b
}

func TestCaptionTemplates(t *testing.T) {
	ctx := context.Background()

	t.Run("fills templates from the structured response", func(t *testing.T) {
		service, generator, businesses := assistantFixture(t)
		business := newPromptedBusiness(t)

		businesses.On("FindByID", ctx, business.ID).Return(business, nil)
		generator.On("GenerateStructured", ctx, mock.MatchedBy(func(prompt string) bool {
			return containsAll(prompt, business.Name, business.Description)
		}), captionSchema, mock.Anything).Run(func(args mock.Arguments) {
			out := args.Get(3).(*[]CaptionTemplate)
			*out = []CaptionTemplate{
				{Platform: "Instagram", Caption: "Fresh from our kitchen"},
				{Platform: "Facebook", Caption: "Order your tray today"},
			}
		}).Return(nil)

		templates, err := service.CaptionTemplates(ctx, business.ID)

		require.NoError(t, err)
		require.Len(t, templates, 2)
		assert.Equal(t, "Instagram", templates[0].Platform)
	})

	t.Run("generation failure degrades to an empty slice", func(t *testing.T) {
		service, generator, businesses := assistantFixture(t)
		business := newPromptedBusiness(t)

		businesses.On("FindByID", ctx, business.ID).Return(business, nil)
		generator.On("GenerateStructured", ctx, mock.Anything, captionSchema, mock.Anything).
			Return(assert.AnError)

		templates, err := service.CaptionTemplates(ctx, business.ID)

		require.NoError(t, err)
		assert.NotNil(t, templates)
		assert.Empty(t, templates)
	})

	t.Run("unknown business surfaces not found", func(t *testing.T) {
		service, generator, businesses := assistantFixture(t)

		businesses.On("FindByID", ctx, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := service.CaptionTemplates(ctx, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
		generator.AssertNotCalled(t, "GenerateStructured", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAnalyzePerformance(t *testing.T) {
	ctx := context.Background()
	reports := []MonthlyReport{
		{Month: "2026-06", Revenue: decimal.NewFromInt(1200), SalesCount: 48, NewCustomers: 9},
		{Month: "2026-07", Revenue: decimal.NewFromInt(900), SalesCount: 31, NewCustomers: 4, Notes: "fuel shortage"},
	}

	t.Run("returns the model summary", func(t *testing.T) {
		service, generator, _ := assistantFixture(t)

		generator.On("GenerateText", ctx, mock.MatchedBy(func(prompt string) bool {
			return containsAll(prompt, "2026-06", "fuel shortage")
		})).Return("Revenue dipped in July; watch supply costs.", nil)

		resp, err := service.AnalyzePerformance(ctx, reports)

		require.NoError(t, err)
		assert.Equal(t, "Revenue dipped in July; watch supply costs.", resp.Summary)
	})

	t.Run("generation failure degrades to the fallback message", func(t *testing.T) {
		service, generator, _ := assistantFixture(t)

		generator.On("GenerateText", ctx, mock.Anything).Return("", assert.AnError)

		resp, err := service.AnalyzePerformance(ctx, reports)

		require.NoError(t, err)
		assert.Equal(t, fallbackAnalysis, resp.Summary)
	})
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

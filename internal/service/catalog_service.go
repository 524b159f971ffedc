// FILE: internal/service/catalog_service.go
package service

import (
	"context"
	"fmt"

	"doc-templates-be/internal/dto"
	"doc-templates-be/pkg/catalog"
	"doc-templates-be/pkg/orchestrator"
)

type ICatalogService interface {
	ListTemplates(ctx context.Context, category, query string) ([]dto.TemplateResponse, error)
	GetTemplate(ctx context.Context, id string) (*dto.TemplateResponse, error)
	Categories(ctx context.Context) []string
	Plans(ctx context.Context) []dto.PlanResponse
}

type catalogService struct {
	catalog *catalog.Catalog
}

func NewCatalogService(cat *catalog.Catalog) ICatalogService {
	return &catalogService{catalog: cat}
}

// ListTemplates filters by category (empty means all) and title query.
func (s *catalogService) ListTemplates(ctx context.Context, category, query string) ([]dto.TemplateResponse, error) {
	c := catalog.CategoryAll
	if category != "" {
		parsed, ok := catalog.ParseCategory(category)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
		}
		c = parsed
	}
	return dto.NewTemplateResponses(s.catalog.Filter(c, query)), nil
}

func (s *catalogService) GetTemplate(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	t, ok := s.catalog.ByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	res := dto.NewTemplateResponse(t)
	return &res, nil
}

func (s *catalogService) Categories(ctx context.Context) []string {
	cats := s.catalog.Categories()
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, string(c))
	}
	return out
}

// Plans are the two tariffs shown on the pricing page.
func (s *catalogService) Plans(ctx context.Context) []dto.PlanResponse {
	return []dto.PlanResponse{
		{
			Slug:          "start",
			Name:          "Старт",
			Price:         0,
			Currency:      "RUB",
			BillingPeriod: "month",
			DocumentLimit: orchestrator.FreeDocumentLimit,
			Features: []string{
				fmt.Sprintf("%d документа бесплатно", orchestrator.FreeDocumentLimit),
				"Базовые шаблоны",
				"Экспорт в TXT",
			},
		},
		{
			Slug:          "business-pro",
			Name:          "Бизнес PRO",
			Price:         990,
			Currency:      "RUB",
			BillingPeriod: "month",
			DocumentLimit: -1,
			IsMostPopular: true,
			Features: []string{
				"Безлимитные документы",
				"Все шаблоны",
				"Экспорт в DOCX, PDF и TXT",
				"Приоритетная поддержка",
			},
		},
	}
}

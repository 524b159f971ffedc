// FILE: internal/dto/catalog_dto.go
package dto

import (
	"doc-templates-be/pkg/catalog"
)

type TemplateResponse struct {
	Id           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Complexity   string   `json:"complexity"`
	Icon         string   `json:"icon"`
	Tags         []string `json:"tags"`
	RequiredInfo []string `json:"required_info"`
}

func NewTemplateResponse(t catalog.Template) TemplateResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TemplateResponse{
		Id:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Category:     string(t.Category),
		Complexity:   string(t.Complexity),
		Icon:         t.Icon,
		Tags:         tags,
		RequiredInfo: t.RequiredInfo,
	}
}

func NewTemplateResponses(ts []catalog.Template) []TemplateResponse {
	out := make([]TemplateResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTemplateResponse(t))
	}
	return out
}

// PlanResponse describes a tariff on the pricing page.
type PlanResponse struct {
	Slug          string   `json:"slug"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency"`
	BillingPeriod string   `json:"billing_period"`
	DocumentLimit int      `json:"document_limit"` // -1 = unlimited
	IsMostPopular bool     `json:"is_most_popular"`
	Features      []string `json:"features"`
}

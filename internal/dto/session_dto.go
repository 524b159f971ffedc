// FILE: internal/dto/session_dto.go
package dto

import (
	"time"

	"doc-templates-be/pkg/catalog"
	"doc-templates-be/pkg/orchestrator"

	"github.com/google/uuid"
)

type SetViewRequest struct {
	View string `json:"view" validate:"required"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"max=200"`
}

type SetCategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

type CompleteAuthRequest struct {
	Token string `json:"token" validate:"required"`
}

type UserResponse struct {
	Id          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	DocsCreated int    `json:"docs_created"`
	IsPro       bool   `json:"is_pro"`
	// -1 = unlimited
	RemainingFreeDocs int `json:"remaining_free_docs"`
}

type NoticeResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SessionResponse is everything a renderer needs to draw the session.
type SessionResponse struct {
	SessionId        uuid.UUID          `json:"session_id"`
	View             string             `json:"view"`
	User             *UserResponse      `json:"user"`
	SelectedTemplate *TemplateResponse  `json:"selected_template"`
	Query            string             `json:"query"`
	Category         string             `json:"category"`
	AuthModalOpen    bool               `json:"auth_modal_open"`
	LimitModalOpen   bool               `json:"limit_modal_open"`
	VisibleTemplates []TemplateResponse `json:"visible_templates"`
	Notices          []NoticeResponse   `json:"notices"`
}

// NewSessionResponse renders s; templates is the catalog to filter.
func NewSessionResponse(id uuid.UUID, s orchestrator.State, templates []catalog.Template) *SessionResponse {
	res := &SessionResponse{
		SessionId:      id,
		View:           string(s.View()),
		Query:          s.Query(),
		Category:       string(s.Category()),
		AuthModalOpen:  s.AuthModalOpen(),
		LimitModalOpen: s.LimitModalOpen(),
		Notices:        []NoticeResponse{},
	}
	if u, ok := s.User(); ok {
		res.User = &UserResponse{
			Id:                u.ID,
			Email:             u.Email,
			Name:              u.Name,
			DocsCreated:       u.DocsCreated,
			IsPro:             u.IsPro,
			RemainingFreeDocs: u.RemainingFreeDocs(),
		}
	}
	if t, ok := s.SelectedTemplate(); ok {
		tr := NewTemplateResponse(t)
		res.SelectedTemplate = &tr
	}
	res.VisibleTemplates = NewTemplateResponses(orchestrator.VisibleTemplates(s, templates))
	for _, n := range s.Notices() {
		res.Notices = append(res.Notices, NoticeResponse{Kind: string(n.Kind), Message: n.Message})
	}
	return res
}

type ActivityResponse struct {
	Id         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	TemplateId *string   `json:"template_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NoticeMessage travels over the in-process notice bus.
type NoticeMessage struct {
	SessionId  uuid.UUID `json:"session_id"`
	UserEmail  string    `json:"user_email"`
	UserName   string    `json:"user_name"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
	// Receipt is set when the notice confirms a fresh Pro upgrade.
	Receipt bool `json:"receipt"`
}

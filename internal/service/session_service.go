// FILE: internal/service/session_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"doc-templates-be/internal/dto"
	"doc-templates-be/internal/entity"
	"doc-templates-be/internal/pkg/logger"
	"doc-templates-be/internal/pkg/serverutils"
	"doc-templates-be/internal/repository/contract"
	"doc-templates-be/internal/repository/memory"
	"doc-templates-be/internal/repository/specification"
	"doc-templates-be/pkg/catalog"
	"doc-templates-be/pkg/events"
	"doc-templates-be/pkg/orchestrator"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrUnknownView      = errors.New("unknown view")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrLedgerDisabled   = errors.New("activity ledger is not configured")
	ErrUnknownActivity  = errors.New("unknown activity kind")
)

// EventPublisher forwards domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type ISessionService interface {
	Start(ctx context.Context) (*dto.SessionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	SetView(ctx context.Context, id uuid.UUID, req *dto.SetViewRequest) (*dto.SessionResponse, error)
	Search(ctx context.Context, id uuid.UUID, req *dto.SearchRequest) (*dto.SessionResponse, error)
	SetCategory(ctx context.Context, id uuid.UUID, req *dto.SetCategoryRequest) (*dto.SessionResponse, error)
	SelectTemplate(ctx context.Context, id uuid.UUID, templateID string) (*dto.SessionResponse, error)
	OpenAuth(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	CompleteAuth(ctx context.Context, id uuid.UUID, req *dto.CompleteAuthRequest) (*dto.SessionResponse, error)
	DismissAuth(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	DismissLimit(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	ChoosePlan(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	Upgrade(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	RecordDocument(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	LeaveEditor(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	Activity(ctx context.Context, id uuid.UUID, kind string, limit int) ([]dto.ActivityResponse, error)
}

type sessionService struct {
	catalog    *catalog.Catalog
	sessions   *memory.SessionRepository
	verifier   *serverutils.IdentityVerifier
	activities contract.ActivityRepository // nil without a database
	events     EventPublisher              // nil without NATS
	notices    INoticePublisher
	logger     logger.ILogger
}

func NewSessionService(
	cat *catalog.Catalog,
	sessions *memory.SessionRepository,
	verifier *serverutils.IdentityVerifier,
	activities contract.ActivityRepository,
	eventPublisher EventPublisher,
	notices INoticePublisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		catalog:    cat,
		sessions:   sessions,
		verifier:   verifier,
		activities: activities,
		events:     eventPublisher,
		notices:    notices,
		logger:     log,
	}
}

func (s *sessionService) Start(ctx context.Context) (*dto.SessionResponse, error) {
	id := uuid.New()
	store := orchestrator.NewStore(orchestrator.Initial())
	store.Subscribe(s.noticeForwarder(id))
	s.sessions.Save(id, store)

	s.logger.Info("SESSION", "Session started", map[string]interface{}{"session_id": id})
	return s.render(id, store.State()), nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	store, err := s.store(id)
	if err != nil {
		return nil, err
	}
	return s.render(id, store.State()), nil
}

func (s *sessionService) SetView(ctx context.Context, id uuid.UUID, req *dto.SetViewRequest) (*dto.SessionResponse, error) {
	v, ok := orchestrator.ParseView(req.View)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownView, req.View)
	}
	return s.dispatch(ctx, id, orchestrator.ViewChanged{View: v})
}

func (s *sessionService) Search(ctx context.Context, id uuid.UUID, req *dto.SearchRequest) (*dto.SessionResponse, error) {
	return s.dispatch(ctx, id, orchestrator.QueryChanged{Query: req.Query})
}

func (s *sessionService) SetCategory(ctx context.Context, id uuid.UUID, req *dto.SetCategoryRequest) (*dto.SessionResponse, error) {
	c, ok := catalog.ParseCategory(req.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, req.Category)
	}
	return s.dispatch(ctx, id, orchestrator.CategoryChanged{Category: c})
}

func (s *sessionService) SelectTemplate(ctx context.Context, id uuid.UUID, templateID string) (*dto.SessionResponse, error) {
	t, ok := s.catalog.ByID(templateID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}
	return s.dispatch(ctx, id, orchestrator.TemplateSelected{Template: t})
}

func (s *sessionService) OpenAuth(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	return s.dispatch(ctx, id, orchestrator.AuthModalOpened{})
}

// CompleteAuth signs the session in with the user named by the verified
// identity token. A new subject starts with no documents; the subject
// already signed in keeps its counters.
func (s *sessionService) CompleteAuth(ctx context.Context, id uuid.UUID, req *dto.CompleteAuthRequest) (*dto.SessionResponse, error) {
	if _, err := s.store(id); err != nil {
		return nil, err
	}
	identity, err := s.verifier.Verify(req.Token)
	if err != nil {
		s.logger.Warn("SESSION", "Identity token rejected", map[string]interface{}{
			"session_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}

	user := orchestrator.User{
		ID:    identity.Subject,
		Email: identity.Email,
		Name:  identity.Name,
	}
	return s.dispatch(ctx, id, orchestrator.AuthCompleted{User: user})
}

func (s *sessionService) DismissAuth(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	return s.dispatch(ctx, id, orchestrator.AuthModalDismissed{})
}

func (s *sessionService) DismissLimit(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	return s.dispatch(ctx, id, orchestrator.LimitModalDismissed{})
}

func (s *sessionService) ChoosePlan(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	return s.dispatch(ctx, id, orchestrator.PricingChosen{})
}

func (s *sessionService) Upgrade(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	return s.dispatch(ctx, id, orchestrator.ProUpgraded{})
}

func (s *sessionService) RecordDocument(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	return s.dispatch(ctx, id, orchestrator.DocumentCreated{})
}

func (s *sessionService) LeaveEditor(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	return s.dispatch(ctx, id, orchestrator.EditorLeft{})
}

// Activity lists ledger rows of the session, newest first. An empty kind
// lists every kind.
func (s *sessionService) Activity(ctx context.Context, id uuid.UUID, kind string, limit int) ([]dto.ActivityResponse, error) {
	if _, err := s.store(id); err != nil {
		return nil, err
	}
	specs := []specification.Specification{specification.BySessionID{SessionID: id}}
	if kind != "" {
		k, ok := entity.ParseActivityKind(kind)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownActivity, kind)
		}
		specs = append(specs, specification.ByActivityKind{Kind: k})
	}
	if s.activities == nil {
		return nil, ErrLedgerDisabled
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)

	rows, err := s.activities.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ActivityResponse, 0, len(rows))
	for _, a := range rows {
		res = append(res, dto.ActivityResponse{
			Id:         a.Id,
			Kind:       string(a.Kind),
			TemplateId: a.TemplateId,
			CreatedAt:  a.CreatedAt,
		})
	}
	return res, nil
}

func (s *sessionService) store(id uuid.UUID) (*orchestrator.Store, error) {
	store, ok := s.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return store, nil
}

func (s *sessionService) render(id uuid.UUID, state orchestrator.State) *dto.SessionResponse {
	return dto.NewSessionResponse(id, state, s.catalog.All())
}

func (s *sessionService) dispatch(ctx context.Context, id uuid.UUID, e orchestrator.Event) (*dto.SessionResponse, error) {
	store, err := s.store(id)
	if err != nil {
		return nil, err
	}

	before, after := store.Dispatch(e)
	s.logger.Debug("SESSION", "Event applied", map[string]interface{}{
		"session_id": id,
		"event":      e.Name(),
		"view":       string(after.View()),
	})
	s.afterTransition(ctx, id, e, before, after)

	return s.render(id, after), nil
}

// afterTransition publishes bus events and ledger rows for the transitions
// that matter outside the session. Failures are logged, the state change
// already happened.
func (s *sessionService) afterTransition(ctx context.Context, id uuid.UUID, e orchestrator.Event, before, after orchestrator.State) {
	user, signedIn := after.User()
	if !signedIn {
		return
	}

	switch e.(type) {
	case orchestrator.AuthCompleted:
		s.publish(ctx, events.SessionEvent(events.TypeUserAuthenticated, id.String(), user.ID, map[string]interface{}{
			"email": user.Email,
		}))

	case orchestrator.TemplateSelected:
		if !before.LimitModalOpen() && after.LimitModalOpen() {
			s.publish(ctx, events.SessionEvent(events.TypeQuotaReached, id.String(), user.ID, map[string]interface{}{
				"docs_created": user.DocsCreated,
			}))
		}

	case orchestrator.DocumentCreated:
		var templateID *string
		if t, ok := before.SelectedTemplate(); ok {
			templateID = &t.ID
		}
		s.record(ctx, id, user.ID, entity.ActivityDocumentCreated, templateID)
		extra := map[string]interface{}{"docs_created": user.DocsCreated}
		if templateID != nil {
			extra["template_id"] = *templateID
		}
		s.publish(ctx, events.SessionEvent(events.TypeDocumentCreated, id.String(), user.ID, extra))

	case orchestrator.ProUpgraded:
		if wasPro(before) {
			return
		}
		s.record(ctx, id, user.ID, entity.ActivityProUpgraded, nil)
		s.publish(ctx, events.SessionEvent(events.TypeProUpgraded, id.String(), user.ID, nil))
	}
}

func (s *sessionService) publish(ctx context.Context, evt events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		s.logger.Warn("SESSION", "Failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *sessionService) record(ctx context.Context, id uuid.UUID, userID string, kind entity.ActivityKind, templateID *string) {
	if s.activities == nil {
		return
	}
	err := s.activities.Create(ctx, &entity.Activity{
		Id:         uuid.New(),
		SessionId:  id,
		UserId:     userID,
		Kind:       kind,
		TemplateId: templateID,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		s.logger.Error("SESSION", "Failed to record activity", map[string]interface{}{
			"session_id": id,
			"kind":       string(kind),
			"error":      err.Error(),
		})
	}
}

// noticeForwarder relays notices of one session to the notice bus.
func (s *sessionService) noticeForwarder(id uuid.UUID) orchestrator.Listener {
	return func(e orchestrator.Event, n orchestrator.Notice, before, after orchestrator.State) {
		if s.notices == nil {
			return
		}
		msg := dto.NoticeMessage{
			SessionId:  id,
			Kind:       string(n.Kind),
			Message:    n.Message,
			OccurredAt: time.Now(),
		}
		if u, signedIn := after.User(); signedIn {
			msg.UserEmail = u.Email
			msg.UserName = u.Name
			msg.Receipt = n.Kind == orchestrator.NoticeProUpgraded && u.IsPro && !wasPro(before)
		}
		if err := s.notices.Publish(context.Background(), msg); err != nil {
			s.logger.Warn("SESSION", "Failed to publish notice", map[string]interface{}{
				"session_id": id,
				"event":      e.Name(),
				"error":      err.Error(),
			})
		}
	}
}

func wasPro(s orchestrator.State) bool {
	u, ok := s.User()
	return ok && u.IsPro
}

package orchestrator

import (
	"doc-templates-be/pkg/catalog"
)

// Event is anything a user or a collaborator reports to the session.
type Event interface {
	Name() string
	apply(State) State
}

type TemplateSelected struct{ Template catalog.Template }
type AuthCompleted struct{ User User }
type ViewChanged struct{ View View }
type QueryChanged struct{ Query string }
type CategoryChanged struct{ Category catalog.Category }
type ProUpgraded struct{}
type DocumentCreated struct{}
type LimitModalDismissed struct{}
type AuthModalDismissed struct{}
type AuthModalOpened struct{}
type PricingChosen struct{}
type EditorLeft struct{}

func (TemplateSelected) Name() string    { return "template_selected" }
func (AuthCompleted) Name() string       { return "auth_completed" }
func (ViewChanged) Name() string         { return "view_changed" }
func (QueryChanged) Name() string        { return "query_changed" }
func (CategoryChanged) Name() string     { return "category_changed" }
func (ProUpgraded) Name() string         { return "pro_upgraded" }
func (DocumentCreated) Name() string     { return "document_created" }
func (LimitModalDismissed) Name() string { return "limit_modal_dismissed" }
func (AuthModalDismissed) Name() string  { return "auth_modal_dismissed" }
func (AuthModalOpened) Name() string     { return "auth_modal_opened" }
func (PricingChosen) Name() string       { return "pricing_chosen" }
func (EditorLeft) Name() string          { return "editor_left" }

func (e TemplateSelected) apply(s State) State  { return SelectTemplate(s, e.Template) }
func (e AuthCompleted) apply(s State) State     { return CompleteAuth(s, e.User) }
func (e ViewChanged) apply(s State) State       { return SetView(s, e.View) }
func (e QueryChanged) apply(s State) State      { return SetQuery(s, e.Query) }
func (e CategoryChanged) apply(s State) State   { return SetCategory(s, e.Category) }
func (ProUpgraded) apply(s State) State         { return UpgradeToPro(s) }
func (DocumentCreated) apply(s State) State     { return RecordDocumentCreated(s) }
func (LimitModalDismissed) apply(s State) State { return DismissLimitModal(s) }
func (AuthModalDismissed) apply(s State) State  { return DismissAuthModal(s) }
func (AuthModalOpened) apply(s State) State     { return OpenAuthModal(s) }
func (PricingChosen) apply(s State) State       { return ChoosePlanFromLimit(s) }
func (EditorLeft) apply(s State) State          { return LeaveEditor(s) }

// Reduce applies e to s. A nil event leaves s as it was, minus its notices.
func Reduce(s State, e Event) State {
	if e == nil {
		return s.next()
	}
	return e.apply(s)
}

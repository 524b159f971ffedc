// Package orchestrator owns the session state of the template front end and
// the rules that move it between views: auth gating, the free document quota
// and template filtering. Every transition is a pure State -> State function.
package orchestrator

import (
	"doc-templates-be/pkg/catalog"
)

// FreeDocumentLimit is how many documents a non-Pro user may create.
const FreeDocumentLimit = 3

type View string

const (
	ViewHome    View = "HOME"
	ViewLibrary View = "LIBRARY"
	ViewTeam    View = "TEAM"
	ViewPricing View = "PRICING"
	ViewEditor  View = "EDITOR"
	ViewAuth    View = "AUTH"
)

func ParseView(s string) (View, bool) {
	switch v := View(s); v {
	case ViewHome, ViewLibrary, ViewTeam, ViewPricing, ViewEditor, ViewAuth:
		return v, true
	}
	return "", false
}

// Navigable reports whether v can be entered by plain navigation.
func (v View) Navigable() bool {
	switch v {
	case ViewHome, ViewLibrary, ViewTeam, ViewPricing:
		return true
	}
	return false
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	DocsCreated int    `json:"docs_created"`
	IsPro       bool   `json:"is_pro"`
}

// CanCreateDocument reports whether the quota still lets u open the editor.
func (u User) CanCreateDocument() bool {
	return u.IsPro || u.DocsCreated < FreeDocumentLimit
}

// RemainingFreeDocs returns -1 for Pro users (unlimited).
func (u User) RemainingFreeDocs() int {
	if u.IsPro {
		return -1
	}
	if n := FreeDocumentLimit - u.DocsCreated; n > 0 {
		return n
	}
	return 0
}

type selectionKind uint8

const (
	selectionNone selectionKind = iota
	// selectionPending holds a template chosen while the editor is not shown,
	// e.g. waiting for authentication.
	selectionPending
	selectionEditing
)

// selection ties the editor to a template: the editing kind can only be
// built together with the template it edits.
type selection struct {
	kind     selectionKind
	template catalog.Template
}

func pending(t catalog.Template) selection {
	return selection{kind: selectionPending, template: t}
}

func editing(t catalog.Template) selection {
	return selection{kind: selectionEditing, template: t}
}

type NoticeKind string

const NoticeProUpgraded NoticeKind = "PRO_UPGRADED"

// Notice is a user-visible acknowledgement produced by a transition.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

const proUpgradedMessage = "🎉 Спасибо за доверие! Теперь вам доступны безлимитные документы и экспорт во все форматы."

// State is an immutable snapshot of one session. The zero value is not
// valid; start from Initial.
type State struct {
	page       View
	user       *User
	sel        selection
	query      string
	category   catalog.Category
	authModal  bool
	limitModal bool
	notices    []Notice
}

// Initial is Home, anonymous, nothing selected, no modal open.
func Initial() State {
	return State{
		page:     ViewHome,
		category: catalog.CategoryAll,
	}
}

// View is the active top-level screen.
func (s State) View() View {
	if s.sel.kind == selectionEditing {
		return ViewEditor
	}
	return s.page
}

func (s State) User() (User, bool) {
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// SelectedTemplate returns the pending or edited template.
func (s State) SelectedTemplate() (catalog.Template, bool) {
	if s.sel.kind == selectionNone {
		return catalog.Template{}, false
	}
	return s.sel.template, true
}

func (s State) Query() string              { return s.query }
func (s State) Category() catalog.Category { return s.category }
func (s State) AuthModalOpen() bool        { return s.authModal }
func (s State) LimitModalOpen() bool       { return s.limitModal }

// Notices returns what the transition that produced s emitted.
func (s State) Notices() []Notice {
	return append([]Notice(nil), s.notices...)
}

// next starts a derived state: notices belong to one transition only.
func (s State) next() State {
	s.notices = nil
	return s
}

func (s State) withUser(u User) State {
	s.user = &u
	return s
}

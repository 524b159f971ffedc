package orchestrator

import (
	"doc-templates-be/pkg/catalog"
)

// navigate shows a browsing page. An open editor is closed but its template
// stays selected.
func (s State) navigate(v View) State {
	s.page = v
	if s.sel.kind == selectionEditing {
		s.sel = pending(s.sel.template)
	}
	return s
}

// SelectTemplate opens t in the editor when the session may do so. Anonymous
// sessions keep t pending and are asked to authenticate; sessions over the
// free quota get the limit prompt and keep their previous selection.
func SelectTemplate(s State, t catalog.Template) State {
	s = s.next()
	if s.user == nil {
		s.sel = pending(t)
		s.authModal = true
		return s
	}
	if !s.user.CanCreateDocument() {
		s.limitModal = true
		return s
	}
	s.sel = editing(t)
	return s
}

// CompleteAuth signs u in and opens the template that was waiting for it.
// A user over the free quota gets the limit prompt instead and the template
// stays pending. Signing the same user in again keeps their document count
// and Pro entitlement.
func CompleteAuth(s State, u User) State {
	if s.user != nil && s.user.ID == u.ID {
		u.DocsCreated = s.user.DocsCreated
		u.IsPro = s.user.IsPro
	}
	s = s.next().withUser(u)
	s.authModal = false
	if s.sel.kind != selectionPending {
		return s
	}
	if !u.CanCreateDocument() {
		s.limitModal = true
		return s
	}
	s.sel = editing(s.sel.template)
	return s
}

// SetView navigates to a browsing page. Editor and Auth cannot be entered
// this way and leave s unchanged.
func SetView(s State, v View) State {
	s = s.next()
	if !v.Navigable() {
		return s
	}
	return s.navigate(v)
}

func SetQuery(s State, query string) State {
	s = s.next()
	s.query = query
	return s
}

// SetCategory switches the filter; unknown categories select everything.
func SetCategory(s State, c catalog.Category) State {
	s = s.next()
	if parsed, ok := catalog.ParseCategory(string(c)); ok {
		s.category = parsed
	} else {
		s.category = catalog.CategoryAll
	}
	return s
}

// FilterTemplates projects templates onto a category filter and a
// case-insensitive title query.
func FilterTemplates(templates []catalog.Template, category catalog.Category, query string) []catalog.Template {
	return catalog.Filter(templates, category, query)
}

// VisibleTemplates applies the filter held by s.
func VisibleTemplates(s State, templates []catalog.Template) []catalog.Template {
	return FilterTemplates(templates, s.category, s.query)
}

// UpgradeToPro grants the Pro entitlement and returns home with a
// confirmation notice.
func UpgradeToPro(s State) State {
	s = s.next()
	if s.user == nil {
		return s
	}
	u := *s.user
	u.IsPro = true
	s = s.withUser(u).navigate(ViewHome)
	s.limitModal = false
	s.notices = []Notice{{Kind: NoticeProUpgraded, Message: proUpgradedMessage}}
	return s
}

// RecordDocumentCreated counts a document finished in the editor.
func RecordDocumentCreated(s State) State {
	s = s.next()
	if s.user == nil {
		return s
	}
	u := *s.user
	u.DocsCreated++
	return s.withUser(u)
}

func DismissLimitModal(s State) State {
	s = s.next()
	s.limitModal = false
	return s
}

func DismissAuthModal(s State) State {
	s = s.next()
	s.authModal = false
	return s
}

// OpenAuthModal asks for sign-in without selecting a template. Signed-in
// sessions have nothing to sign in to.
func OpenAuthModal(s State) State {
	s = s.next()
	if s.user != nil {
		return s
	}
	s.authModal = true
	return s
}

// ChoosePlanFromLimit leaves the limit prompt for the pricing page.
func ChoosePlanFromLimit(s State) State {
	s = s.next()
	s.limitModal = false
	return s.navigate(ViewPricing)
}

// LeaveEditor goes home and drops the selected template.
func LeaveEditor(s State) State {
	s = s.next()
	s.page = ViewHome
	s.sel = selection{}
	return s
}

package orchestrator

import (
	"testing"

	"doc-templates-be/pkg/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ndaTemplate = catalog.Template{
		ID:           "NDA",
		Title:        "Соглашение о неразглашении (NDA)",
		Category:     catalog.CategoryBusiness,
		Complexity:   catalog.ComplexityMedium,
		RequiredInfo: []string{"parties"},
	}
	resumeTemplate = catalog.Template{
		ID:         "resume",
		Title:      "Резюме специалиста",
		Category:   catalog.CategoryResume,
		Complexity: catalog.ComplexitySimple,
	}
)

func freshUser() User {
	return User{ID: "1", Email: "anna@example.com", Name: "Анна"}
}

func signedIn(u User) State {
	return CompleteAuth(Initial(), u)
}

func TestInitialState(t *testing.T) {
	s := Initial()

	assert.Equal(t, ViewHome, s.View())
	_, ok := s.User()
	assert.False(t, ok)
	_, ok = s.SelectedTemplate()
	assert.False(t, ok)
	assert.False(t, s.AuthModalOpen())
	assert.False(t, s.LimitModalOpen())
	assert.Equal(t, catalog.CategoryAll, s.Category())
	assert.Empty(t, s.Query())
}

func TestAnonymousSelectWaitsForAuth(t *testing.T) {
	for _, start := range []View{ViewHome, ViewLibrary, ViewTeam, ViewPricing} {
		t.Run(string(start), func(t *testing.T) {
			s := SelectTemplate(SetView(Initial(), start), ndaTemplate)

			assert.True(t, s.AuthModalOpen())
			assert.Equal(t, start, s.View())

			s = CompleteAuth(s, freshUser())
			assert.False(t, s.AuthModalOpen())
			assert.Equal(t, ViewEditor, s.View())
			selected, ok := s.SelectedTemplate()
			require.True(t, ok)
			assert.Equal(t, "NDA", selected.ID)
		})
	}
}

func TestCompleteAuthWithoutPendingTemplateKeepsView(t *testing.T) {
	s := OpenAuthModal(SetView(Initial(), ViewPricing))
	require.True(t, s.AuthModalOpen())

	s = CompleteAuth(s, freshUser())

	assert.Equal(t, ViewPricing, s.View())
	assert.False(t, s.AuthModalOpen())
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "1", u.ID)
}

func TestCompleteAuthOverQuotaShowsLimit(t *testing.T) {
	u := freshUser()
	u.DocsCreated = FreeDocumentLimit

	s := CompleteAuth(SelectTemplate(Initial(), ndaTemplate), u)

	assert.False(t, s.AuthModalOpen())
	assert.True(t, s.LimitModalOpen())
	assert.Equal(t, ViewHome, s.View())
	selected, ok := s.SelectedTemplate()
	require.True(t, ok)
	assert.Equal(t, "NDA", selected.ID)
}

func TestOpenAuthModalIgnoredWhenSignedIn(t *testing.T) {
	s := OpenAuthModal(signedIn(freshUser()))
	assert.False(t, s.AuthModalOpen())

	s = OpenAuthModal(Initial())
	assert.True(t, s.AuthModalOpen())
}

func TestReauthCannotReopenEditorOverQuota(t *testing.T) {
	s := SelectTemplate(signedIn(freshUser()), ndaTemplate)
	for i := 0; i < FreeDocumentLimit; i++ {
		s = RecordDocumentCreated(s)
	}
	s = SetView(s, ViewLibrary)
	s = OpenAuthModal(s)
	require.False(t, s.AuthModalOpen())

	s = CompleteAuth(s, freshUser())

	assert.Equal(t, ViewLibrary, s.View())
	assert.True(t, s.LimitModalOpen())
	got, _ := s.User()
	assert.Equal(t, FreeDocumentLimit, got.DocsCreated)
}

func TestQuotaBlocksFreeUser(t *testing.T) {
	u := freshUser()
	u.DocsCreated = FreeDocumentLimit
	s := SetView(signedIn(u), ViewLibrary)

	for _, tpl := range []catalog.Template{ndaTemplate, resumeTemplate} {
		next := SelectTemplate(s, tpl)
		assert.True(t, next.LimitModalOpen())
		assert.Equal(t, ViewLibrary, next.View())
		_, ok := next.SelectedTemplate()
		assert.False(t, ok)
	}
}

func TestQuotaKeepsPendingSelection(t *testing.T) {
	u := freshUser()
	u.DocsCreated = FreeDocumentLimit
	s := SelectTemplate(Initial(), ndaTemplate)
	s = CompleteAuth(s, u)
	s = SetView(s, ViewHome)

	s = SelectTemplate(s, resumeTemplate)

	assert.True(t, s.LimitModalOpen())
	selected, ok := s.SelectedTemplate()
	require.True(t, ok)
	assert.Equal(t, "NDA", selected.ID)
}

func TestProUserAlwaysReachesEditor(t *testing.T) {
	for _, docs := range []int{0, 2, 3, 10, 500} {
		u := freshUser()
		u.IsPro = true
		u.DocsCreated = docs

		s := SelectTemplate(signedIn(u), resumeTemplate)

		assert.Equal(t, ViewEditor, s.View(), "docs=%d", docs)
		assert.False(t, s.LimitModalOpen())
	}
}

func TestThreeDocumentsThenBlocked(t *testing.T) {
	s := signedIn(freshUser())
	for i := 0; i < FreeDocumentLimit; i++ {
		s = SelectTemplate(s, ndaTemplate)
		require.Equal(t, ViewEditor, s.View())
		s = RecordDocumentCreated(s)
		assert.Equal(t, ViewEditor, s.View())
		s = LeaveEditor(s)
	}

	u, _ := s.User()
	assert.Equal(t, 3, u.DocsCreated)
	assert.Equal(t, 0, u.RemainingFreeDocs())

	s = SelectTemplate(s, ndaTemplate)
	assert.True(t, s.LimitModalOpen())
	assert.Equal(t, ViewHome, s.View())
}

func TestRecordDocumentCreatedWithoutUser(t *testing.T) {
	s := RecordDocumentCreated(Initial())
	_, ok := s.User()
	assert.False(t, ok)
	assert.Equal(t, Initial().View(), s.View())
}

func TestUpgradeToPro(t *testing.T) {
	u := freshUser()
	u.DocsCreated = FreeDocumentLimit
	s := SelectTemplate(SetView(signedIn(u), ViewTeam), ndaTemplate)
	require.True(t, s.LimitModalOpen())

	s = UpgradeToPro(s)

	got, _ := s.User()
	assert.True(t, got.IsPro)
	assert.Equal(t, -1, got.RemainingFreeDocs())
	assert.False(t, s.LimitModalOpen())
	assert.Equal(t, ViewHome, s.View())
	require.Len(t, s.Notices(), 1)
	assert.Equal(t, NoticeProUpgraded, s.Notices()[0].Kind)

	again := UpgradeToPro(s)
	got, _ = again.User()
	assert.True(t, got.IsPro)
	assert.Equal(t, ViewHome, again.View())
}

func TestUpgradeToProWithoutUserIsNoop(t *testing.T) {
	s := UpgradeToPro(SetView(Initial(), ViewPricing))

	assert.Equal(t, ViewPricing, s.View())
	assert.Empty(t, s.Notices())
}

func TestNoticesLastOneTransition(t *testing.T) {
	s := UpgradeToPro(signedIn(freshUser()))
	require.NotEmpty(t, s.Notices())

	s = SetQuery(s, "договор")
	assert.Empty(t, s.Notices())
}

func TestSetViewNeverEntersEditorOrAuth(t *testing.T) {
	s := SetView(Initial(), ViewLibrary)
	for _, v := range []View{ViewEditor, ViewAuth, View("SETTINGS")} {
		next := SetView(s, v)
		assert.Equal(t, ViewLibrary, next.View())
		assert.False(t, next.AuthModalOpen())
	}
}

func TestSetViewClosesEditorKeepingSelection(t *testing.T) {
	s := SelectTemplate(signedIn(freshUser()), ndaTemplate)
	require.Equal(t, ViewEditor, s.View())

	s = SetView(s, ViewPricing)

	assert.Equal(t, ViewPricing, s.View())
	selected, ok := s.SelectedTemplate()
	require.True(t, ok)
	assert.Equal(t, "NDA", selected.ID)
}

func TestLeaveEditorClearsSelection(t *testing.T) {
	s := SelectTemplate(SetView(signedIn(freshUser()), ViewLibrary), ndaTemplate)

	s = LeaveEditor(s)

	assert.Equal(t, ViewHome, s.View())
	_, ok := s.SelectedTemplate()
	assert.False(t, ok)
}

func TestChoosePlanFromLimit(t *testing.T) {
	u := freshUser()
	u.DocsCreated = 5
	s := SelectTemplate(signedIn(u), ndaTemplate)
	require.True(t, s.LimitModalOpen())

	s = ChoosePlanFromLimit(s)

	assert.False(t, s.LimitModalOpen())
	assert.Equal(t, ViewPricing, s.View())
}

func TestDismissModals(t *testing.T) {
	s := SelectTemplate(Initial(), ndaTemplate)
	s = DismissAuthModal(s)
	assert.False(t, s.AuthModalOpen())
	assert.Equal(t, ViewHome, s.View())

	u := freshUser()
	u.DocsCreated = 3
	s = SelectTemplate(signedIn(u), ndaTemplate)
	s = DismissLimitModal(s)
	assert.False(t, s.LimitModalOpen())
	_, ok := s.User()
	assert.True(t, ok)
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	before := signedIn(freshUser())

	_ = RecordDocumentCreated(before)
	_ = UpgradeToPro(before)

	u, _ := before.User()
	assert.Equal(t, 0, u.DocsCreated)
	assert.False(t, u.IsPro)
}

func TestReauthKeepsCountersOfSameUser(t *testing.T) {
	u := freshUser()
	u.DocsCreated = 2
	u.IsPro = true
	s := signedIn(u)

	s = CompleteAuth(s, freshUser())
	got, _ := s.User()
	assert.Equal(t, 2, got.DocsCreated)
	assert.True(t, got.IsPro)

	other := User{ID: "2", Email: "boris@example.com", Name: "Борис"}
	s = CompleteAuth(s, other)
	got, _ = s.User()
	assert.Equal(t, "2", got.ID)
	assert.Equal(t, 0, got.DocsCreated)
	assert.False(t, got.IsPro)
}

func TestSetCategory(t *testing.T) {
	s := SetCategory(Initial(), catalog.CategoryResume)
	assert.Equal(t, catalog.CategoryResume, s.Category())

	s = SetCategory(s, catalog.Category("Спорт"))
	assert.Equal(t, catalog.CategoryAll, s.Category())
}

func TestFilterTemplates(t *testing.T) {
	c := catalog.MustDefault()

	resumes := FilterTemplates(c.All(), catalog.CategoryResume, "")
	require.NotEmpty(t, resumes)
	for _, tpl := range resumes {
		assert.Equal(t, catalog.CategoryResume, tpl.Category)
	}
	assert.Len(t, resumes, len(c.Filter(catalog.CategoryResume, "")))

	nda := FilterTemplates(c.All(), catalog.CategoryAll, "nda")
	require.Len(t, nda, 1)
	assert.Equal(t, "nda", nda[0].ID)

	s := SetQuery(SetCategory(Initial(), catalog.CategoryAll), "NDA")
	assert.Equal(t, nda, VisibleTemplates(s, c.All()))
}

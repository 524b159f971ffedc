package integration

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"doc-templates-be/internal/dto"
	"doc-templates-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionAPI_GuestToProJourney(t *testing.T) {
	a := newTestApp(t, nil)
	s := a.start(t)
	base := "/api/sessions/" + s.SessionId.String()

	assert.Equal(t, "HOME", s.View)
	assert.Nil(t, s.User)

	t.Run("Guest picks NDA", func(t *testing.T) {
		status, env := a.session(t, http.MethodPost, base+"/templates/nda/select", nil)
		require.Equal(t, http.StatusOK, status)
		assert.True(t, env.Data.AuthModalOpen)
		assert.Equal(t, "HOME", env.Data.View)
		require.NotNil(t, env.Data.SelectedTemplate)
		assert.Equal(t, "Соглашение о неразглашении (NDA)", env.Data.SelectedTemplate.Title)
	})

	t.Run("Sign-in opens the waiting template", func(t *testing.T) {
		token := identityToken(t, "1", "anna@example.com", "Анна")
		status, env := a.session(t, http.MethodPost, base+"/auth/complete", dto.CompleteAuthRequest{Token: token})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "EDITOR", env.Data.View)
		assert.False(t, env.Data.AuthModalOpen)
		require.NotNil(t, env.Data.User)
		assert.Equal(t, 0, env.Data.User.DocsCreated)
		assert.False(t, env.Data.User.IsPro)
	})

	t.Run("Three documents use up the free quota", func(t *testing.T) {
		var env serverutils.BaseResponse[*dto.SessionResponse]
		for i := 0; i < 3; i++ {
			_, env = a.session(t, http.MethodPost, base+"/editor/documents", nil)
		}
		assert.Equal(t, 3, env.Data.User.DocsCreated)
		assert.Equal(t, 0, env.Data.User.RemainingFreeDocs)

		_, env = a.session(t, http.MethodPost, base+"/editor/back", nil)
		assert.Equal(t, "HOME", env.Data.View)

		_, env = a.session(t, http.MethodPost, base+"/templates/resume/select", nil)
		assert.True(t, env.Data.LimitModalOpen)
		assert.Equal(t, "HOME", env.Data.View)
	})

	t.Run("Upgrade lifts the limit", func(t *testing.T) {
		_, env := a.session(t, http.MethodPost, base+"/limit/pricing", nil)
		assert.Equal(t, "PRICING", env.Data.View)

		_, env = a.session(t, http.MethodPost, base+"/upgrade", nil)
		assert.Equal(t, "HOME", env.Data.View)
		assert.True(t, env.Data.User.IsPro)
		assert.Equal(t, 3, env.Data.User.DocsCreated)
		require.Len(t, env.Data.Notices, 1)

		_, env = a.session(t, http.MethodPost, base+"/templates/resume/select", nil)
		assert.Equal(t, "EDITOR", env.Data.View)
		assert.False(t, env.Data.LimitModalOpen)
	})

	t.Run("State survives a reload", func(t *testing.T) {
		status, env := a.session(t, http.MethodGet, base, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "EDITOR", env.Data.View)
		assert.Empty(t, env.Data.Notices)
	})
}

func TestSessionAPI_ReauthKeepsQuota(t *testing.T) {
	a := newTestApp(t, nil)
	base := "/api/sessions/" + a.start(t).SessionId.String()
	token := identityToken(t, "1", "anna@example.com", "Анна")

	a.session(t, http.MethodPost, base+"/auth/complete", dto.CompleteAuthRequest{Token: token})
	for i := 0; i < 3; i++ {
		a.session(t, http.MethodPost, base+"/editor/documents", nil)
	}
	_, env := a.session(t, http.MethodPost, base+"/templates/nda/select", nil)
	require.True(t, env.Data.LimitModalOpen)
	a.session(t, http.MethodPost, base+"/limit/dismiss", nil)

	_, env = a.session(t, http.MethodPost, base+"/auth/open", nil)
	assert.False(t, env.Data.AuthModalOpen)

	_, env = a.session(t, http.MethodPost, base+"/auth/complete", dto.CompleteAuthRequest{Token: token})
	require.NotNil(t, env.Data.User)
	assert.Equal(t, 3, env.Data.User.DocsCreated)
	assert.Equal(t, 0, env.Data.User.RemainingFreeDocs)

	_, env = a.session(t, http.MethodPost, base+"/templates/nda/select", nil)
	assert.Equal(t, "HOME", env.Data.View)
	assert.True(t, env.Data.LimitModalOpen)
}

func TestSessionAPI_ReauthAfterLeavingEditorOverQuota(t *testing.T) {
	a := newTestApp(t, nil)
	base := "/api/sessions/" + a.start(t).SessionId.String()
	token := identityToken(t, "1", "anna@example.com", "Анна")

	a.session(t, http.MethodPost, base+"/templates/nda/select", nil)
	_, env := a.session(t, http.MethodPost, base+"/auth/complete", dto.CompleteAuthRequest{Token: token})
	require.Equal(t, "EDITOR", env.Data.View)
	for i := 0; i < 3; i++ {
		a.session(t, http.MethodPost, base+"/editor/documents", nil)
	}
	_, env = a.session(t, http.MethodPost, base+"/view", dto.SetViewRequest{View: "LIBRARY"})
	require.NotNil(t, env.Data.SelectedTemplate)

	_, env = a.session(t, http.MethodPost, base+"/auth/complete", dto.CompleteAuthRequest{Token: token})
	assert.Equal(t, "LIBRARY", env.Data.View)
	assert.True(t, env.Data.LimitModalOpen)
	assert.Equal(t, 3, env.Data.User.DocsCreated)
}

func TestSessionAPI_Errors(t *testing.T) {
	a := newTestApp(t, nil)
	s := a.start(t)
	base := "/api/sessions/" + s.SessionId.String()

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"malformed session id", http.MethodGet, "/api/sessions/not-a-uuid", nil, http.StatusBadRequest},
		{"unknown session", http.MethodGet, "/api/sessions/" + uuid.NewString(), nil, http.StatusNotFound},
		{"unknown template", http.MethodPost, base + "/templates/missing/select", nil, http.StatusNotFound},
		{"unknown view", http.MethodPost, base + "/view", dto.SetViewRequest{View: "SETTINGS"}, http.StatusBadRequest},
		{"missing view", http.MethodPost, base + "/view", map[string]string{}, http.StatusBadRequest},
		{"forged identity", http.MethodPost, base + "/auth/complete", dto.CompleteAuthRequest{Token: "forged"}, http.StatusUnauthorized},
		{"ledger off", http.MethodGet, base + "/activity", nil, http.StatusServiceUnavailable},
		{"unknown activity kind", http.MethodGet, base + "/activity?kind=deleted", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := a.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, status)

			var env serverutils.BaseResponse[any]
			require.NoError(t, json.Unmarshal(raw, &env))
			assert.False(t, env.Success)
			assert.Equal(t, tt.want, env.Code)
		})
	}
}

func TestSessionAPI_ViewSwitchNeverOpensEditor(t *testing.T) {
	a := newTestApp(t, nil)
	base := "/api/sessions/" + a.start(t).SessionId.String()

	_, env := a.session(t, http.MethodPost, base+"/view", dto.SetViewRequest{View: "EDITOR"})
	assert.Equal(t, "HOME", env.Data.View)

	_, env = a.session(t, http.MethodPost, base+"/view", dto.SetViewRequest{View: "TEAM"})
	assert.Equal(t, "TEAM", env.Data.View)
}

func TestCatalogAPI(t *testing.T) {
	a := newTestApp(t, nil)

	t.Run("All templates", func(t *testing.T) {
		status, raw := a.do(t, http.MethodGet, "/api/templates", nil)
		require.Equal(t, http.StatusOK, status)
		var env serverutils.BaseResponse[[]dto.TemplateResponse]
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Len(t, env.Data, 17)
	})

	t.Run("Filtered by category and query", func(t *testing.T) {
		q := url.Values{"category": {"Деньги"}, "q": {"РАСПИСКА"}}
		status, raw := a.do(t, http.MethodGet, "/api/templates?"+q.Encode(), nil)
		require.Equal(t, http.StatusOK, status)
		var env serverutils.BaseResponse[[]dto.TemplateResponse]
		require.NoError(t, json.Unmarshal(raw, &env))
		require.Len(t, env.Data, 1)
		assert.Equal(t, "loan-receipt", env.Data[0].Id)
	})

	t.Run("Unknown category", func(t *testing.T) {
		q := url.Values{"category": {"Прочее"}}
		status, _ := a.do(t, http.MethodGet, "/api/templates?"+q.Encode(), nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Plans", func(t *testing.T) {
		status, raw := a.do(t, http.MethodGet, "/api/plans", nil)
		require.Equal(t, http.StatusOK, status)
		var env serverutils.BaseResponse[[]dto.PlanResponse]
		require.NoError(t, json.Unmarshal(raw, &env))
		require.Len(t, env.Data, 2)
		assert.True(t, env.Data[1].IsMostPopular)
		assert.Equal(t, 3, env.Data[0].DocumentLimit)
	})

	t.Run("Categories", func(t *testing.T) {
		status, raw := a.do(t, http.MethodGet, "/api/categories", nil)
		require.Equal(t, http.StatusOK, status)
		var env serverutils.BaseResponse[[]string]
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, "Все", env.Data[0])
	})
}

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"doc-templates-be/internal/bootstrap"
	"doc-templates-be/internal/config"
	"doc-templates-be/internal/dto"
	"doc-templates-be/internal/pkg/serverutils"
	"doc-templates-be/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const identitySecret = "integration-identity-secret"

type testApp struct {
	app *fiber.App
	cfg *config.Config
}

// newTestApp builds the real server with every optional backend switched off
// except the database passed in.
func newTestApp(t *testing.T, db *gorm.DB) *testApp {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LOG_FILE_PATH", filepath.Join(dir, "app.log"))
	t.Setenv("NOTICE_LOG_FILE_PATH", filepath.Join(dir, "notice.log"))
	t.Setenv("NATS_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("IDENTITY_TOKEN_SECRET", identitySecret)
	t.Setenv("IDENTITY_TOKEN_ISSUER", "")

	cfg := config.Load()
	container := bootstrap.NewContainer(db, cfg)
	t.Cleanup(container.Close)

	return &testApp{app: server.New(cfg, container).GetApp(), cfg: cfg}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (a *testApp) session(t *testing.T, method, path string, body interface{}) (int, serverutils.BaseResponse[*dto.SessionResponse]) {
	t.Helper()
	status, raw := a.do(t, method, path, body)
	var env serverutils.BaseResponse[*dto.SessionResponse]
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return status, env
}

func (a *testApp) start(t *testing.T) *dto.SessionResponse {
	t.Helper()
	status, env := a.session(t, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)
	return env.Data
}

func identityToken(t *testing.T, subject, email, name string) string {
	t.Helper()
	tok, err := serverutils.NewIdentityVerifier(identitySecret, "").Sign(serverutils.Identity{
		Subject: subject,
		Email:   email,
		Name:    name,
	}, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))})
	require.NoError(t, err)
	return tok
}

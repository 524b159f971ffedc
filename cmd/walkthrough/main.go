// walkthrough drives a running server through the guest-to-Pro journey:
// pick a template anonymously, sign in, create documents until the free
// quota runs out, then upgrade.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"doc-templates-be/internal/config"
	"doc-templates-be/internal/dto"
	"doc-templates-be/internal/pkg/serverutils"

	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
)

type sessionEnvelope = serverutils.BaseResponse[*dto.SessionResponse]

func baseURL() string {
	if u := os.Getenv("WALKTHROUGH_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:3000/api"
}

func sendRequest(method, path string, body interface{}) (*sessionEnvelope, int, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL()+path, bodyReader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var env sessionEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, err
	}
	return &env, resp.StatusCode, nil
}

func step(title, method, path string, body interface{}) *dto.SessionResponse {
	color.Yellow("\n%s", title)
	env, status, err := sendRequest(method, path, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if !env.Success {
		color.Red("Status %d: %s", status, env.Message)
		os.Exit(1)
	}

	s := env.Data
	color.Green("Status: %d  view=%s auth_modal=%t limit_modal=%t", status, s.View, s.AuthModalOpen, s.LimitModalOpen)
	if s.User != nil {
		fmt.Printf("  user=%s docs=%d pro=%t remaining=%d\n", s.User.Email, s.User.DocsCreated, s.User.IsPro, s.User.RemainingFreeDocs)
	}
	if s.SelectedTemplate != nil {
		fmt.Printf("  template=%s\n", s.SelectedTemplate.Title)
	}
	for _, n := range s.Notices {
		color.Magenta("  notice: %s", n.Message)
	}
	return s
}

func main() {
	cfg := config.Load()
	if cfg.Auth.IdentitySecret == "" {
		color.Red("IDENTITY_TOKEN_SECRET must be set to sign a test identity")
		os.Exit(1)
	}

	color.Cyan("🚀 Document template journey walkthrough\n")

	s := step("1. Start session", http.MethodPost, "/sessions", nil)
	base := "/sessions/" + s.SessionId.String()

	step("2. Pick NDA as guest", http.MethodPost, base+"/templates/nda/select", nil)

	verifier := serverutils.NewIdentityVerifier(cfg.Auth.IdentitySecret, cfg.Auth.Issuer)
	token, err := verifier.Sign(serverutils.Identity{
		Subject: "walkthrough-user",
		Email:   "demo@example.com",
		Name:    "Демо Пользователь",
	}, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute))})
	if err != nil {
		color.Red("Failed to sign identity: %v", err)
		os.Exit(1)
	}
	step("3. Complete sign-in", http.MethodPost, base+"/auth/complete", dto.CompleteAuthRequest{Token: token})

	for i := 1; i <= 3; i++ {
		step(fmt.Sprintf("4.%d Create document", i), http.MethodPost, base+"/editor/documents", nil)
	}
	step("5. Back to library", http.MethodPost, base+"/editor/back", nil)
	step("6. Pick another template over quota", http.MethodPost, base+"/templates/lease-apartment/select", nil)
	step("7. Go to pricing", http.MethodPost, base+"/limit/pricing", nil)
	step("8. Upgrade", http.MethodPost, base+"/upgrade", nil)
	step("9. Pick again as Pro", http.MethodPost, base+"/templates/lease-apartment/select", nil)

	color.Cyan("\n✅ Walkthrough finished")
}

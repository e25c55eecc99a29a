//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

type sessionInfo struct {
	UserID int64
	OpenID string
	Token  string
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

// devLogin creates a fresh session via the dev login endpoint. The API
// must run with APP_ENV != production for the route to exist.
func devLogin(t *testing.T, nickname string) sessionInfo {
	t.Helper()

	payload := map[string]string{
		"nickname": fmt.Sprintf("%s-%d", nickname, time.Now().UnixNano()),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal login payload: %v", err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/auth/dev/login", baseURL()), "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("dev login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected dev login status %d: %s", resp.StatusCode, raw)
	}

	var out struct {
		Token string `json:"token"`
		User  struct {
			ID     int64  `json:"id"`
			OpenID string `json:"openid"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response failed: %v", err)
	}
	if out.Token == "" {
		t.Fatalf("empty token in login response")
	}

	return sessionInfo{UserID: out.User.ID, OpenID: out.User.OpenID, Token: out.Token}
}

// doAuthed performs an authenticated JSON request and decodes the
// response body into out when out is non-nil.
func doAuthed(t *testing.T, session sessionInfo, method, path string, payload, out interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL()+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+session.Token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("decode %s %s response (%s): %v", method, path, raw, err)
		}
	}
	return resp
}

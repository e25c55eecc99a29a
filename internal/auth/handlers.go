package auth

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/mbecker/reloquiz/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for login.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{svc: svc, logger: logger}
}

type loginRequest struct {
	Code     string `json:"code"`
	Nickname string `json:"nickname"`
}

// WeChatLogin handles POST /v1/auth/wechat/login
func (h *HTTPHandlers) WeChatLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Code == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "code is required", "code")
		return
	}

	session, err := h.svc.Login(r.Context(), req.Code, req.Nickname)
	if err != nil {
		h.logger.Warn().Err(err).Msg("wechat login failed")
		httperrors.RespondBadRequest(w, httperrors.ErrCodeLoginFailed, err.Error())
		return
	}
	h.respondSession(w, session)
}

// DevLogin handles POST /v1/auth/dev/login (non-production only).
func (h *HTTPHandlers) DevLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	session, err := h.svc.DevLogin(r.Context(), req.Nickname)
	if err != nil {
		httperrors.RespondForbidden(w, httperrors.ErrCodeForbidden, err.Error())
		return
	}
	h.respondSession(w, session)
}

func (h *HTTPHandlers) respondSession(w http.ResponseWriter, session *Session) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"token": session.Token,
		"user": map[string]interface{}{
			"id":       session.User.ID,
			"openid":   session.User.OpenID,
			"nickname": session.User.Nickname,
		},
	})
}

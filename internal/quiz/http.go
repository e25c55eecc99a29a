package quiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mbecker/reloquiz/internal/auth/jwt"
	httperrors "github.com/mbecker/reloquiz/pkg/http/errors"
)

// HTTPHandlers exposes the questionnaire REST endpoints.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "quiz_http").Logger(),
	}
}

// servedQuestion is the client-facing question shape. Category labels
// stay server-side.
type servedQuestion struct {
	ID       int64   `json:"id"`
	Text     string  `json:"text"`
	Weight   float64 `json:"weight"`
	Category int     `json:"category"`
}

// GetQuestionnaire handles GET /v1/questionnaire - a fresh stratified
// selection, gated by the attempt limit.
func (h *HTTPHandlers) GetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	status, err := h.svc.CheckPermission(r.Context(), claims.OpenID)
	if err == nil && !status.CanAnswer {
		httperrors.RespondForbidden(w, httperrors.ErrCodeDailyLimit, status.Message)
		return
	}

	selection, err := h.svc.SelectQuestions(r.Context())
	if err != nil {
		h.respondSelectionError(w, err)
		return
	}

	served := make([]servedQuestion, 0, len(selection))
	for _, q := range selection {
		served = append(served, servedQuestion{ID: q.ID, Text: q.Text, Weight: q.Weight, Category: q.Category})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"questions": served})
}

// CheckPermission handles GET /v1/questionnaire/permission.
func (h *HTTPHandlers) CheckPermission(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	status, err := h.svc.CheckPermission(r.Context(), claims.OpenID)
	if err != nil {
		h.logger.Error().Err(err).Msg("permission check failed")
		httperrors.RespondInternalError(w, "could not check permission")
		return
	}
	respondJSON(w, http.StatusOK, status)
}

type submitRequest struct {
	Answers []Answer `json:"answers"`
}

// Submit handles POST /v1/responses.
func (h *HTTPHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if len(req.Answers) == 0 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "answers must not be empty", "answers")
		return
	}

	result, err := h.svc.Submit(r.Context(), claims.UserID, claims.OpenID, req.Answers)
	if err != nil {
		h.respondSubmitError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetResponse handles GET /v1/responses/{id}.
func (h *HTTPHandlers) GetResponse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	raw := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/responses/"), "/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid response id")
		return
	}

	rec, err := h.svc.Response(r.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrResponseNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeResponseNotFound, "Response not found")
			return
		}
		h.logger.Error().Err(err).Int64("response_id", id).Msg("response fetch failed")
		httperrors.RespondInternalError(w, "could not fetch response")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"response_id": rec.ID,
		"total_score": rec.TotalScore,
		"recommendation": map[string]string{
			"code": rec.RecommendationCode,
			"text": rec.RecommendationText,
		},
		"extreme_feedback": rec.ExtremeFeedback,
		"answers":          rec.Answers,
		"extreme_choices":  rec.ExtremeChoices,
		"created_at":       rec.CreatedAt,
	})
}

func (h *HTTPHandlers) respondSelectionError(w http.ResponseWriter, err error) {
	var exhausted *PoolExhaustedError
	if errors.As(err, &exhausted) {
		httperrors.RespondErrorWithDetails(w, http.StatusInternalServerError, httperrors.ErrCodePoolExhausted,
			"question bank cannot satisfy the selection constraints", map[string]interface{}{
				"buckets":    exhausted.Buckets,
				"categories": exhausted.Categories,
			})
		return
	}
	h.logger.Error().Err(err).Msg("question selection failed")
	httperrors.RespondError(w, http.StatusServiceUnavailable, httperrors.ErrCodeSelectionFailed, "could not assemble questionnaire")
}

func (h *HTTPHandlers) respondSubmitError(w http.ResponseWriter, err error) {
	var validation *ValidationError
	switch {
	case errors.Is(err, ErrDailyLimitReached):
		httperrors.RespondForbidden(w, httperrors.ErrCodeDailyLimit, "you have used up today's attempts, come back tomorrow")
	case errors.As(err, &validation):
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, validation.Reason, validation.Field)
	default:
		var exhausted *PoolExhaustedError
		if errors.As(err, &exhausted) {
			h.respondSelectionError(w, err)
			return
		}
		h.logger.Error().Err(err).Msg("submission failed")
		httperrors.RespondError(w, http.StatusServiceUnavailable, httperrors.ErrCodeSubmitFailed, "could not process submission")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

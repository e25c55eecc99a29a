package quota

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mbecker/reloquiz/internal/auth/jwt"
	httperrors "github.com/mbecker/reloquiz/pkg/http/errors"
)

// HTTPHandlers exposes the share-reward endpoint.
type HTTPHandlers struct {
	rewarder *ShareRewarder
	logger   zerolog.Logger
}

func NewHTTPHandlers(rewarder *ShareRewarder, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		rewarder: rewarder,
		logger:   logger.With().Str("component", "quota_http").Logger(),
	}
}

// ShareReward handles POST /v1/share/reward.
func (h *HTTPHandlers) ShareReward(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	result, err := h.rewarder.Reward(r.Context(), claims.UserID, claims.OpenID)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", claims.UserID).Msg("share reward failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeRewardFailed, "could not process share reward")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(result)
}

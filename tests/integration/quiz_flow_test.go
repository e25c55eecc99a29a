//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
)

type questionPayload struct {
	ID       int64   `json:"id"`
	Text     string  `json:"text"`
	Weight   float64 `json:"weight"`
	Category int     `json:"category"`
}

type submissionPayload struct {
	ResponseID         int64   `json:"response_id"`
	TotalScore         float64 `json:"total_score"`
	Level              int     `json:"level"`
	RecommendationCode string  `json:"recommendation_code"`
	RecommendationText string  `json:"recommendation_text"`
	ExtremeFeedback    string  `json:"extreme_feedback"`
}

// TestQuestionnaireFlow drives the full respondent journey: login, check
// permission, fetch a questionnaire, submit answers and read the stored
// result back. Requires a seeded question bank of at least 30 questions
// spread over the canonical weights.
func TestQuestionnaireFlow(t *testing.T) {
	session := devLogin(t, "flow")

	var permission struct {
		CanAnswer bool `json:"canAnswer"`
	}
	resp := doAuthed(t, session, http.MethodGet, "/v1/questionnaire/permission", nil, &permission)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected permission status: %d", resp.StatusCode)
	}
	if !permission.CanAnswer {
		t.Fatalf("fresh user should be allowed to answer")
	}

	var questionnaire struct {
		Questions []questionPayload `json:"questions"`
	}
	resp = doAuthed(t, session, http.MethodGet, "/v1/questionnaire", nil, &questionnaire)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected questionnaire status: %d", resp.StatusCode)
	}
	if len(questionnaire.Questions) != 30 {
		t.Fatalf("expected 30 questions, got %d", len(questionnaire.Questions))
	}

	seen := map[int64]bool{}
	answers := make([]map[string]interface{}, 0, len(questionnaire.Questions))
	for _, q := range questionnaire.Questions {
		if seen[q.ID] {
			t.Fatalf("question %d served twice", q.ID)
		}
		seen[q.ID] = true
		answers = append(answers, map[string]interface{}{
			"question_id": q.ID,
			"answer":      3,
		})
	}

	var result submissionPayload
	resp = doAuthed(t, session, http.MethodPost, "/v1/responses", map[string]interface{}{"answers": answers}, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected submit status: %d", resp.StatusCode)
	}
	if result.ResponseID == 0 {
		t.Fatalf("missing response id in submission result")
	}
	if result.Level < 0 || result.Level > 5 {
		t.Fatalf("recommendation level %d out of range", result.Level)
	}
	if result.RecommendationCode != fmt.Sprintf("level_%d", result.Level) {
		t.Fatalf("code %q does not match level %d", result.RecommendationCode, result.Level)
	}
	if result.RecommendationText == "" {
		t.Fatalf("empty recommendation text")
	}

	var stored struct {
		ResponseID int64   `json:"response_id"`
		TotalScore float64 `json:"total_score"`
	}
	resp = doAuthed(t, session, http.MethodGet, fmt.Sprintf("/v1/responses/%d", result.ResponseID), nil, &stored)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected response fetch status: %d", resp.StatusCode)
	}
	if stored.TotalScore != result.TotalScore {
		t.Fatalf("stored score %v does not match submitted score %v", stored.TotalScore, result.TotalScore)
	}
}

func TestSubmitRejectsIncompleteAnswerSet(t *testing.T) {
	session := devLogin(t, "short")

	payload := map[string]interface{}{
		"answers": []map[string]interface{}{
			{"question_id": 1, "answer": 3},
		},
	}
	resp := doAuthed(t, session, http.MethodPost, "/v1/responses", payload, nil)
	if resp.StatusCode != http.StatusBadRequest && resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected validation failure, got status %d", resp.StatusCode)
	}
}

func TestResponseIsScopedToOwner(t *testing.T) {
	owner := devLogin(t, "owner")

	var questionnaire struct {
		Questions []questionPayload `json:"questions"`
	}
	resp := doAuthed(t, owner, http.MethodGet, "/v1/questionnaire", nil, &questionnaire)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected questionnaire status: %d", resp.StatusCode)
	}

	answers := make([]map[string]interface{}, 0, len(questionnaire.Questions))
	for _, q := range questionnaire.Questions {
		answers = append(answers, map[string]interface{}{"question_id": q.ID, "answer": 2})
	}
	var result submissionPayload
	resp = doAuthed(t, owner, http.MethodPost, "/v1/responses", map[string]interface{}{"answers": answers}, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected submit status: %d", resp.StatusCode)
	}

	stranger := devLogin(t, "stranger")
	resp = doAuthed(t, stranger, http.MethodGet, fmt.Sprintf("/v1/responses/%d", result.ResponseID), nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign response, got %d", resp.StatusCode)
	}
}

func TestShareRewardIsOneShot(t *testing.T) {
	session := devLogin(t, "sharer")

	var first struct {
		Rewarded bool `json:"rewarded"`
	}
	resp := doAuthed(t, session, http.MethodPost, "/v1/share/reward", map[string]string{}, &first)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected share reward status: %d", resp.StatusCode)
	}
	if !first.Rewarded {
		t.Fatalf("first share should grant the bonus")
	}

	var second struct {
		Rewarded bool `json:"rewarded"`
	}
	resp = doAuthed(t, session, http.MethodPost, "/v1/share/reward", map[string]string{}, &second)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected share reward status: %d", resp.StatusCode)
	}
	if second.Rewarded {
		t.Fatalf("repeat share must not grant another bonus")
	}
}

func TestQuestionnaireRequiresAuth(t *testing.T) {
	resp, err := http.Get(baseURL() + "/v1/questionnaire")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
}

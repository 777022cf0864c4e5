package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/thea/internal/auth"
	"github.com/alexanderramin/thea/internal/httpapi"
	"github.com/alexanderramin/thea/internal/planner"
	"github.com/alexanderramin/thea/internal/repository"
	"github.com/alexanderramin/thea/internal/scheduler"
	"github.com/alexanderramin/thea/internal/service"
	"github.com/alexanderramin/thea/internal/testutil"
	"github.com/alexanderramin/thea/internal/transcribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 13, 0, 0, 0, time.Local)

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) Transcribe(_ context.Context, audio io.Reader, _ string) (string, error) {
	if _, err := io.ReadAll(audio); err != nil {
		return "", err
	}
	return f.text, f.err
}

type testEnv struct {
	handler http.Handler
	tokens  *auth.TokenIssuer
}

func newTestEnv(t *testing.T, tr transcribe.Transcriber) testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	sessions := repository.NewSQLSessionRepo(database)
	days := repository.NewSQLDayRecordRepo(database)
	items := repository.NewSQLPlanItemRepo(database)
	incidents := repository.NewSQLIncidentRepo(database)
	uow := testutil.NewTestUoW(database)

	orch := planner.NewOrchestrator(scheduler.NewSynthesizer(scheduler.WithRandSeed(3)))
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	return testEnv{
		handler: httpapi.NewServer(httpapi.Deps{
			Profiles:    service.NewProfileService(sessions),
			Plans:       service.NewPlanService(sessions, days, items, uow, orch),
			Status:      service.NewStatusService(uow),
			History:     service.NewHistoryService(days, items, incidents),
			Tokens:      tokens,
			Transcriber: tr,
			Now:         func() time.Time { return fixedNow },
		}),
		tokens: tokens,
	}
}

func (e testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body=%s", w.Body.String())
	return out
}

func (e testEnv) register(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/device", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	out := decode[map[string]string](t, w)
	require.NotEmpty(t, out["deviceId"])
	return out["token"]
}

var onboarding = map[string]any{
	"childName":         "Mia",
	"childAge":          5,
	"illnessTypes":      []string{"Fever", "Cough"},
	"childEnergyLevel":  "Medium",
	"parentEnergyLevel": "Low",
	"medications": []map[string]string{
		{"name": "Tylenol", "dosage": "5ml", "frequency": "6h", "timeLastGiven": "08:00"},
	},
}

type planBody struct {
	Date     string  `json:"date"`
	Source   string  `json:"source"`
	Incident *string `json:"incident"`
	Gentle   bool    `json:"gentle"`
	Saved    bool    `json:"saved"`
	Items    []struct {
		ID       string `json:"id"`
		Type     string `json:"type"`
		Title    string `json:"title"`
		Time     string `json:"time"`
		Status   string `json:"status"`
		IsGentle bool   `json:"isGentle"`
	} `json:"items"`
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/profile", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.register(t)

	w := env.do(t, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPut, "/api/profile", token, onboarding)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, w)
	assert.Equal(t, "Mia", got["childName"])
	assert.Len(t, got["medications"], 1)

	w = env.do(t, http.MethodPut, "/api/medications", token, map[string]any{"medications": []any{}})
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[map[string]any](t, w)
	assert.Empty(t, got["medications"])
}

func TestProfileValidation(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.register(t)

	bad := map[string]any{}
	for k, v := range onboarding {
		bad[k] = v
	}
	bad["childAge"] = 12

	w := env.do(t, http.MethodPut, "/api/profile", token, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "childAge", body["field"])
	assert.NotEmpty(t, body["message"])
}

func TestGeneratePlan(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.register(t)

	w := env.do(t, http.MethodPost, "/api/plan/generate", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "no profile yet")

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/api/profile", token, onboarding).Code)

	w = env.do(t, http.MethodPost, "/api/plan/generate", token, map[string]string{"currentTime": "13:00"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	plan := decode[planBody](t, w)
	assert.Equal(t, "2026-03-01", plan.Date)
	assert.Equal(t, "local", plan.Source)
	assert.True(t, plan.Saved)
	require.NotEmpty(t, plan.Items)
	assert.Equal(t, "13:00", plan.Items[0].Time)
	for i := 1; i < len(plan.Items); i++ {
		assert.LessOrEqual(t, plan.Items[i-1].Time, plan.Items[i].Time)
	}

	w = env.do(t, http.MethodGet, "/api/plan?date=2026-03-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stored := decode[planBody](t, w)
	assert.Empty(t, stored.Source, "read back, not regenerated")
	assert.Equal(t, plan.Items, stored.Items)
}

func TestGeneratePlan_BadInput(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.register(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/api/profile", token, onboarding).Code)

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"bad time", map[string]string{"currentTime": "25:00"}, "currentTime"},
		{"unknown incident", map[string]string{"incident": "Broke a leg"}, "incident"},
		{"blank description", map[string]string{"incidentDescription": "  "}, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/plan/generate", token, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.field, decode[map[string]string](t, w)["field"])
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/plan/generate", strings.NewReader("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIncidentReport(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.register(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/api/profile", token, onboarding).Code)

	w := env.do(t, http.MethodPost, "/api/incidents", token, map[string]string{
		"currentTime": "13:00",
		"incident":    "Fever spike",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	plan := decode[planBody](t, w)
	require.NotNil(t, plan.Incident)
	assert.Equal(t, "Fever spike", *plan.Incident)
	assert.True(t, plan.Gentle)
	assert.Equal(t, "Immediate Rest & Comfort", plan.Items[0].Title)

	w = env.do(t, http.MethodPost, "/api/incidents", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]map[string]any](t, w)
	require.Len(t, history, 1)
	assert.Len(t, history[0]["incidents"], 1)
}

func TestUpdateItem(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.register(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/api/profile", token, onboarding).Code)

	plan := decode[planBody](t, env.do(t, http.MethodPost, "/api/plan/generate", token, map[string]string{"currentTime": "13:00"}))
	require.NotEmpty(t, plan.Items)
	id := plan.Items[0].ID
	patch := func(status string) map[string]string {
		return map[string]string{"status": status, "date": plan.Date}
	}

	w := env.do(t, http.MethodPatch, "/api/plan/"+id, token, patch("completed"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "completed", decode[map[string]any](t, w)["status"])

	w = env.do(t, http.MethodPatch, "/api/plan/"+id, token, patch("skipped"))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPatch, "/api/plan/missing", token, patch("skipped"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPatch, "/api/plan/"+id, token, patch("pending"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDevicesAreIsolated(t *testing.T) {
	env := newTestEnv(t, nil)
	a := env.register(t)
	b := env.register(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/api/profile", a, onboarding).Code)

	plan := decode[planBody](t, env.do(t, http.MethodPost, "/api/plan/generate", a, map[string]string{"currentTime": "13:00"}))
	require.NotEmpty(t, plan.Items)

	w := env.do(t, http.MethodPatch, "/api/plan/"+plan.Items[0].ID, b, map[string]string{"status": "completed", "date": plan.Date})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClassify(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.register(t)

	w := env.do(t, http.MethodPost, "/api/classify", token, map[string]string{"text": "She is burning up, fever of 39 degrees"})
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[map[string]any](t, w)
	assert.Equal(t, "Fever spike", out["incident"])
	assert.Equal(t, 1.0, out["confidence"])

	w = env.do(t, http.MethodPost, "/api/classify", token, map[string]string{"text": "we read a book"})
	out = decode[map[string]any](t, w)
	assert.Nil(t, out["incident"])
}

func audioRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("audio", "recording.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-audio"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/voice/transcribe", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestTranscribe(t *testing.T) {
	tests := []struct {
		name       string
		tr         transcribe.Transcriber
		wantStatus int
		wantInc    any
	}{
		{"not configured", nil, http.StatusServiceUnavailable, nil},
		{"classified", fakeTranscriber{text: "he threw up twice"}, http.StatusOK, "Threw up"},
		{"unclassified", fakeTranscriber{text: "we watched a movie"}, http.StatusOK, nil},
		{"silence", fakeTranscriber{err: transcribe.ErrEmptyAudio}, http.StatusBadRequest, nil},
		{"upstream failure", fakeTranscriber{err: errors.New("boom")}, http.StatusBadGateway, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.tr)
			token := env.register(t)

			w := httptest.NewRecorder()
			env.handler.ServeHTTP(w, audioRequest(t, token))
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				out := decode[map[string]any](t, w)
				assert.NotEmpty(t, out["transcription"])
				assert.Equal(t, tt.wantInc, out["incident"])
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodOptions, "/api/plan", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

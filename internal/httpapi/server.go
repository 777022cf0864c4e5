// Package httpapi exposes the planner over JSON HTTP. Every route except
// device registration and health is scoped to the device in the bearer token.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/auth"
	"github.com/alexanderramin/thea/internal/clock"
	"github.com/alexanderramin/thea/internal/device"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/scheduler"
	"github.com/alexanderramin/thea/internal/transcribe"
)

// maxAudioBytes bounds a voice upload.
const maxAudioBytes = 25 << 20

type Deps struct {
	Profiles app.ProfileUseCase
	Plans    app.PlanUseCase
	Status   app.StatusUseCase
	History  app.HistoryUseCase
	Tokens   *auth.TokenIssuer
	// Transcriber is optional; without it voice uploads return 503.
	Transcriber transcribe.Transcriber
	Logger      *slog.Logger
	Now         func() time.Time
}

type Server struct {
	profiles    app.ProfileUseCase
	plans       app.PlanUseCase
	status      app.StatusUseCase
	history     app.HistoryUseCase
	tokens      *auth.TokenIssuer
	transcriber transcribe.Transcriber
	logger      *slog.Logger
	now         func() time.Time
}

func NewServer(d Deps) http.Handler {
	s := &Server{
		profiles:    d.Profiles,
		plans:       d.Plans,
		status:      d.Status,
		history:     d.History,
		tokens:      d.Tokens,
		transcriber: d.Transcriber,
		logger:      d.Logger,
		now:         d.Now,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/device", s.handleRegisterDevice)

	mux.HandleFunc("PUT /api/profile", s.requireDevice(s.handleSaveProfile))
	mux.HandleFunc("GET /api/profile", s.requireDevice(s.handleGetProfile))
	mux.HandleFunc("PUT /api/medications", s.requireDevice(s.handleSaveMedications))
	mux.HandleFunc("POST /api/plan/generate", s.requireDevice(s.handleGenerate))
	mux.HandleFunc("GET /api/plan", s.requireDevice(s.handleGetPlan))
	mux.HandleFunc("PATCH /api/plan/{id}", s.requireDevice(s.handleUpdateItem))
	mux.HandleFunc("POST /api/incidents", s.requireDevice(s.handleIncident))
	mux.HandleFunc("GET /api/history", s.requireDevice(s.handleHistory))
	mux.HandleFunc("POST /api/voice/transcribe", s.requireDevice(s.handleTranscribe))
	mux.HandleFunc("POST /api/classify", s.requireDevice(s.handleClassify))

	return chainMiddlewares(mux, withCORS, s.withLogging)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	id := device.New()
	token, err := s.tokens.Issue(id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, deviceResponse{DeviceID: id, Token: token})
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var body profileDTO
	if !decodeBody(w, r, &body) {
		return
	}
	profile, meds := body.toDomain()
	resp, err := s.profiles.SaveProfile(r.Context(), app.SaveProfileRequest{
		DeviceID:    deviceFrom(r.Context()),
		Profile:     profile,
		Medications: meds,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(resp.Profile, resp.Medications))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	resp, err := s.profiles.GetProfile(r.Context(), deviceFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(resp.Profile, resp.Medications))
}

func (s *Server) handleSaveMedications(w http.ResponseWriter, r *http.Request) {
	var body medicationsRequest
	if !decodeBody(w, r, &body) {
		return
	}
	resp, err := s.profiles.SaveMedications(r.Context(), deviceFrom(r.Context()), medicationsToDomain(body.Medications))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(resp.Profile, resp.Medications))
}

// handleGenerate regenerates the rest of today. An incident in the body
// makes it an incident report.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if !decodeBody(w, r, &body) {
		return
	}
	req, ok := s.planRequest(w, r, body)
	if !ok {
		return
	}

	var (
		resp *app.PlanResponse
		err  error
	)
	if req.IsIncidentReport() {
		resp, err = s.plans.ReportIncident(r.Context(), req)
	} else {
		resp, err = s.plans.Generate(r.Context(), req)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanResponse(resp))
}

func (s *Server) handleIncident(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if !decodeBody(w, r, &body) {
		return
	}
	req, ok := s.planRequest(w, r, body)
	if !ok {
		return
	}
	resp, err := s.plans.ReportIncident(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanResponse(resp))
}

func (s *Server) planRequest(w http.ResponseWriter, r *http.Request, body generateRequest) (app.GeneratePlanRequest, bool) {
	req := app.GeneratePlanRequest{
		DeviceID:    deviceFrom(r.Context()),
		Description: body.IncidentDescription,
	}
	if body.CurrentTime != "" {
		t, err := clock.Parse(body.CurrentTime)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error(), Field: "currentTime"})
			return req, false
		}
		now := s.now()
		at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		req.At = &at
	}
	if body.Incident != nil {
		inc, ok := domain.ParseIncident(*body.Incident)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "unknown incident " + *body.Incident, Field: "incident"})
			return req, false
		}
		req.Incident = &inc
	}
	return req, true
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	resp, err := s.plans.Today(r.Context(), deviceFrom(r.Context()), r.URL.Query().Get("date"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanResponse(resp))
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var body updateItemRequest
	if !decodeBody(w, r, &body) {
		return
	}
	res, err := s.status.UpdateStatus(r.Context(), app.UpdateStatusRequest{
		DeviceID: deviceFrom(r.Context()),
		Date:     body.Date,
		ItemID:   r.PathValue("id"),
		Status:   domain.ItemStatus(body.Status),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	switch {
	case !res.Found:
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Plan item not found"})
	case !res.Applied:
		writeJSON(w, http.StatusConflict, errorResponse{Message: "Plan item is already " + string(res.Item.Status)})
	default:
		writeJSON(w, http.StatusOK, toPlanItemDTO(*res.Item))
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.history.List(r.Context(), deviceFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]dayRecordDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, toDayRecordDTO(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var body classifyRequest
	if !decodeBody(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, toClassifyResponse(scheduler.Classify(body.Text)))
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if s.transcriber == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Message: "Voice transcription is not configured"})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes)
	file, hdr, err := r.FormFile("audio")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "audio file is required", Field: "audio"})
		return
	}
	defer file.Close()

	text, err := s.transcriber.Transcribe(r.Context(), file, hdr.Filename)
	if err != nil {
		if errors.Is(err, transcribe.ErrEmptyAudio) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "No speech was recognized. Please try again.", Field: "audio"})
			return
		}
		s.logger.ErrorContext(r.Context(), "transcription failed", "request_id", requestIDFrom(r.Context()), "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Message: "Transcription failed"})
		return
	}
	c := scheduler.Classify(text)
	writeJSON(w, http.StatusOK, transcribeResponse{
		Transcription: text,
		Incident:      incidentString(c.Incident),
		Confidence:    c.Confidence,
	})
}

// writeError maps use-case errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		vErr    *domain.ValidationError
		planErr *app.PlanError
	)
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: vErr.Message, Field: vErr.Field})
	case errors.As(err, &planErr) && planErr.Code == app.PlanErrInvalidRequest:
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: planErr.Message, Field: planErr.Field})
	case errors.As(err, &planErr) && planErr.Code == app.PlanErrNoProfile:
		writeJSON(w, http.StatusNotFound, errorResponse{Message: planErr.Message})
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "request failed",
		"request_id", requestIDFrom(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
}

// decodeBody treats an empty body as an empty object.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

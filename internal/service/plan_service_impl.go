package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/clock"
	"github.com/alexanderramin/thea/internal/db"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/planner"
	"github.com/alexanderramin/thea/internal/repository"
	"github.com/alexanderramin/thea/internal/scheduler"
)

type planService struct {
	sessions     repository.SessionRepo
	days         repository.DayRecordRepo
	items        repository.PlanItemRepo
	uow          db.UnitOfWork
	orchestrator *planner.Orchestrator
	locks        *keyedMutex
	now          func() time.Time
	newID        scheduler.IDSource
	observer     UseCaseObserver
}

func NewPlanService(
	sessions repository.SessionRepo,
	days repository.DayRecordRepo,
	items repository.PlanItemRepo,
	uow db.UnitOfWork,
	orchestrator *planner.Orchestrator,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		sessions:     sessions,
		days:         days,
		items:        items,
		uow:          uow,
		orchestrator: orchestrator,
		locks:        newKeyedMutex(),
		now:          time.Now,
		newID:        scheduler.NewID,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Generate(ctx context.Context, req app.GeneratePlanRequest) (resp *app.PlanResponse, err error) {
	fields := map[string]any{}
	done := track(ctx, s.observer, "generate-plan", req.DeviceID, fields)
	defer func() { done(err) }()

	if err = validatePlanRequest(req); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(req.DeviceID)
	defer unlock()

	resp, err = s.generateLocked(ctx, req)
	if resp != nil {
		describeResponse(fields, resp)
	}
	return resp, err
}

func (s *planService) ReportIncident(ctx context.Context, req app.GeneratePlanRequest) (resp *app.PlanResponse, err error) {
	fields := map[string]any{}
	done := track(ctx, s.observer, "report-incident", req.DeviceID, fields)
	defer func() { done(err) }()

	if !req.IsIncidentReport() {
		err = &app.PlanError{
			Code:    app.PlanErrInvalidRequest,
			Field:   "incident",
			Message: "an incident category or description is required",
		}
		return nil, err
	}
	if err = validatePlanRequest(req); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(req.DeviceID)
	defer unlock()

	resp, err = s.generateLocked(ctx, req)
	if resp != nil {
		describeResponse(fields, resp)
	}
	return resp, err
}

func (s *planService) Today(ctx context.Context, deviceID, date string) (resp *app.PlanResponse, err error) {
	fields := map[string]any{"date": date}
	done := track(ctx, s.observer, "today", deviceID, fields)
	defer func() { done(err) }()

	if err = requireDevice(deviceID); err != nil {
		return nil, err
	}

	now := s.now()
	today := now.Format(domain.DateLayout)
	if date == "" {
		date = today
	}
	if _, perr := time.Parse(domain.DateLayout, date); perr != nil {
		err = &app.PlanError{
			Code:    app.PlanErrInvalidRequest,
			Field:   "date",
			Message: fmt.Sprintf("date must be YYYY-MM-DD, got %q", date),
			Err:     perr,
		}
		return nil, err
	}

	unlock := s.locks.Lock(deviceID)
	defer unlock()

	_, getErr := s.days.Get(ctx, deviceID, date)
	switch {
	case getErr == nil:
		var items []domain.PlanItem
		items, err = s.items.ListByDay(ctx, deviceID, date)
		if err != nil {
			return nil, fmt.Errorf("loading plan: %w", err)
		}
		fields["items"] = len(items)
		return &app.PlanResponse{
			DeviceID: deviceID,
			Date:     date,
			Items:    items,
			Gentle:   anyGentle(items),
			Saved:    true,
		}, nil
	case !errors.Is(getErr, repository.ErrNotFound):
		return nil, fmt.Errorf("loading day record: %w", getErr)
	case date != today:
		// Past and future days are never synthesized on view.
		return &app.PlanResponse{DeviceID: deviceID, Date: date, Items: []domain.PlanItem{}}, nil
	}

	resp, err = s.generateLocked(ctx, app.GeneratePlanRequest{DeviceID: deviceID, At: &now})
	if resp != nil {
		describeResponse(fields, resp)
	}
	return resp, err
}

func (s *planService) Stored(ctx context.Context, deviceID, date string) (resp *app.PlanResponse, err error) {
	if err = requireDevice(deviceID); err != nil {
		return nil, err
	}
	if date == "" {
		date = s.now().Format(domain.DateLayout)
	}
	items, err := s.items.ListByDay(ctx, deviceID, date)
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}
	return &app.PlanResponse{
		DeviceID: deviceID,
		Date:     date,
		Items:    items,
		Gentle:   anyGentle(items),
		Saved:    len(items) > 0,
	}, nil
}

// generateLocked runs with the device lock held.
func (s *planService) generateLocked(ctx context.Context, req app.GeneratePlanRequest) (*app.PlanResponse, error) {
	session, err := s.sessions.Get(ctx, req.DeviceID)
	if err != nil {
		return nil, profileLookupError(err)
	}

	at := s.now()
	if req.At != nil {
		at = *req.At
	}
	date := at.Format(domain.DateLayout)

	description := ""
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
	}

	planReq := planner.PlanRequest{
		Profile:     session.Profile,
		Medications: session.Medications,
		Now:         clock.FromTime(at),
		Incident:    req.Incident,
		Description: description,
	}
	if req.IsIncidentReport() {
		// A failed read only costs the model its context.
		if existing, err := s.items.ListByDay(ctx, req.DeviceID, date); err == nil {
			planReq.ExistingPlan = domain.Pending(existing)
		}
	}

	result := s.orchestrator.Generate(ctx, planReq)

	resp := &app.PlanResponse{
		DeviceID: req.DeviceID,
		Date:     date,
		Items:    result.Items,
		Source:   result.Source,
		Incident: result.Incident,
		Gentle:   result.Gentle,
	}
	if resp.Items == nil {
		resp.Items = []domain.PlanItem{}
	}

	var report *domain.IncidentReport
	if req.IsIncidentReport() {
		report = &domain.IncidentReport{
			ID:          s.newID(),
			Timestamp:   at.UTC(),
			Category:    result.Incident,
			Description: description,
		}
	}

	persistErr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		record := &domain.DayRecord{
			DeviceID:    req.DeviceID,
			Date:        date,
			Profile:     session.Profile,
			Medications: session.Medications,
			CreatedAt:   at.UTC(),
		}
		if _, err := repository.NewSQLDayRecordRepo(tx).Ensure(ctx, record); err != nil {
			return err
		}
		if err := repository.NewSQLPlanItemRepo(tx).ReplacePlan(ctx, req.DeviceID, date, resp.Items); err != nil {
			return err
		}
		if report != nil {
			return repository.NewSQLIncidentRepo(tx).Append(ctx, req.DeviceID, date, report)
		}
		return nil
	})
	if persistErr != nil {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:     "persist-plan",
			DeviceID: req.DeviceID,
			Err:      persistErr,
			Fields:   map[string]any{"date": date},
		})
		return resp, nil
	}
	resp.Saved = true
	return resp, nil
}

func validatePlanRequest(req app.GeneratePlanRequest) error {
	if err := requireDevice(req.DeviceID); err != nil {
		return err
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return &app.PlanError{
			Code:    app.PlanErrInvalidRequest,
			Field:   "description",
			Message: "description must not be empty",
		}
	}
	return nil
}

func describeResponse(fields map[string]any, resp *app.PlanResponse) {
	fields["date"] = resp.Date
	fields["items"] = len(resp.Items)
	fields["gentle"] = resp.Gentle
	fields["saved"] = resp.Saved
	if resp.Source != "" {
		fields["source"] = string(resp.Source)
	}
	if resp.Incident != nil {
		fields["incident"] = string(*resp.Incident)
	}
}

func anyGentle(items []domain.PlanItem) bool {
	for _, it := range items {
		if it.IsGentle {
			return true
		}
	}
	return false
}

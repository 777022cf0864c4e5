package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/db"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/repository"
)

type statusService struct {
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

// NewStatusService builds the item status use case. Updates are not
// serialized against plan regeneration; an item replaced mid-flight is
// reported as not found.
func NewStatusService(uow db.UnitOfWork, observers ...UseCaseObserver) StatusService {
	return &statusService{
		uow:      uow,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *statusService) UpdateStatus(ctx context.Context, req app.UpdateStatusRequest) (res *app.UpdateStatusResult, err error) {
	fields := map[string]any{
		"item_id": req.ItemID,
		"status":  string(req.Status),
	}
	done := track(ctx, s.observer, "update-status", req.DeviceID, fields)
	defer func() { done(err) }()

	if err = requireDevice(req.DeviceID); err != nil {
		return nil, err
	}
	if req.Status != domain.StatusCompleted && req.Status != domain.StatusSkipped {
		err = &domain.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("status must be completed or skipped, got %q", req.Status),
		}
		return nil, err
	}
	date := req.Date
	if date == "" {
		date = s.now().Format(domain.DateLayout)
	}

	res = &app.UpdateStatusResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLPlanItemRepo(tx)
		item, err := items.GetByID(ctx, req.DeviceID, date, req.ItemID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		res.Found = true
		res.Item = item

		if err := item.Transition(req.Status); err != nil {
			if errors.Is(err, domain.ErrTerminalStatus) {
				return nil
			}
			return err
		}
		applied, err := items.SetStatusIfPending(ctx, req.DeviceID, date, item.ID, item.Status)
		if err != nil {
			return err
		}
		if !applied {
			// Lost a race with another transition or a regeneration.
			current, err := items.GetByID(ctx, req.DeviceID, date, item.ID)
			if errors.Is(err, repository.ErrNotFound) {
				res.Found, res.Item = false, nil
				return nil
			}
			if err != nil {
				return err
			}
			res.Item = current
			return nil
		}
		res.Applied = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("updating item status: %w", err)
	}
	fields["found"] = res.Found
	fields["applied"] = res.Applied
	return res, nil
}

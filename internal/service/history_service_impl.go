package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/repository"
)

type historyService struct {
	days      repository.DayRecordRepo
	items     repository.PlanItemRepo
	incidents repository.IncidentRepo
}

func NewHistoryService(days repository.DayRecordRepo, items repository.PlanItemRepo, incidents repository.IncidentRepo) HistoryService {
	return &historyService{days: days, items: items, incidents: incidents}
}

// List returns every day record for the device, newest first, each with its
// plan and incident log.
func (s *historyService) List(ctx context.Context, deviceID string) ([]*domain.DayRecord, error) {
	if err := requireDevice(deviceID); err != nil {
		return nil, err
	}
	records, err := s.days.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("listing day records: %w", err)
	}
	for _, rec := range records {
		if rec.Plan, err = s.items.ListByDay(ctx, deviceID, rec.Date); err != nil {
			return nil, fmt.Errorf("loading plan for %s: %w", rec.Date, err)
		}
		if rec.Incidents, err = s.incidents.ListByDay(ctx, deviceID, rec.Date); err != nil {
			return nil, fmt.Errorf("loading incidents for %s: %w", rec.Date, err)
		}
	}
	return records, nil
}

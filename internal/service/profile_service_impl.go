package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/repository"
)

type profileService struct {
	sessions repository.SessionRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewProfileService(sessions repository.SessionRepo, observers ...UseCaseObserver) ProfileService {
	return &profileService{
		sessions: sessions,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *profileService) SaveProfile(ctx context.Context, req app.SaveProfileRequest) (resp *app.ProfileResponse, err error) {
	done := track(ctx, s.observer, "save-profile", req.DeviceID, map[string]any{
		"medications": len(req.Medications),
	})
	defer func() { done(err) }()

	if err = requireDevice(req.DeviceID); err != nil {
		return nil, err
	}
	if err = req.Profile.Validate(); err != nil {
		return nil, err
	}
	if err = domain.ValidateMedications(req.Medications); err != nil {
		return nil, err
	}

	session := &domain.Session{
		DeviceID:    req.DeviceID,
		Profile:     req.Profile,
		Medications: req.Medications,
		UpdatedAt:   s.now().UTC(),
	}
	if err = s.sessions.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	return sessionResponse(session), nil
}

func (s *profileService) SaveMedications(ctx context.Context, deviceID string, meds []domain.Medication) (resp *app.ProfileResponse, err error) {
	done := track(ctx, s.observer, "save-medications", deviceID, map[string]any{
		"medications": len(meds),
	})
	defer func() { done(err) }()

	if err = requireDevice(deviceID); err != nil {
		return nil, err
	}
	if err = domain.ValidateMedications(meds); err != nil {
		return nil, err
	}

	var session *domain.Session
	session, err = s.sessions.Get(ctx, deviceID)
	if err != nil {
		return nil, profileLookupError(err)
	}
	session.Medications = meds
	session.UpdatedAt = s.now().UTC()
	if err = s.sessions.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("saving medications: %w", err)
	}
	return sessionResponse(session), nil
}

func (s *profileService) GetProfile(ctx context.Context, deviceID string) (*app.ProfileResponse, error) {
	if err := requireDevice(deviceID); err != nil {
		return nil, err
	}
	session, err := s.sessions.Get(ctx, deviceID)
	if err != nil {
		return nil, profileLookupError(err)
	}
	return sessionResponse(session), nil
}

func sessionResponse(s *domain.Session) *app.ProfileResponse {
	meds := s.Medications
	if meds == nil {
		meds = []domain.Medication{}
	}
	return &app.ProfileResponse{
		DeviceID:    s.DeviceID,
		Profile:     s.Profile,
		Medications: meds,
	}
}

func requireDevice(deviceID string) error {
	if deviceID == "" {
		return &app.PlanError{
			Code:    app.PlanErrInvalidRequest,
			Field:   "deviceId",
			Message: "device identity is required",
		}
	}
	return nil
}

// profileLookupError turns a missing session into NO_PROFILE so callers can
// send the parent to onboarding.
func profileLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &app.PlanError{
			Code:    app.PlanErrNoProfile,
			Field:   "profile",
			Message: "no profile saved for this device; complete onboarding first",
			Err:     err,
		}
	}
	return fmt.Errorf("loading profile: %w", err)
}

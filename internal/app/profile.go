package app

import "github.com/alexanderramin/thea/internal/domain"

type SaveProfileRequest struct {
	DeviceID    string
	Profile     domain.ChildProfile
	Medications []domain.Medication
}

type ProfileResponse struct {
	DeviceID    string
	Profile     domain.ChildProfile
	Medications []domain.Medication
}

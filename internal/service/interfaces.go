package service

import "github.com/alexanderramin/thea/internal/app"

type ProfileService interface {
	app.ProfileUseCase
}

type PlanService interface {
	app.PlanUseCase
}

type StatusService interface {
	app.StatusUseCase
}

type HistoryService interface {
	app.HistoryUseCase
}

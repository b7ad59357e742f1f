package container

import (
	app "omr-bot/internal/application"
	"omr-bot/internal/domain/port"
)

type Container struct {
	UserService    *app.UserService
	GradingService *app.GradingService
}

func New(userRepo port.UserRepository, resultRepo port.ResultRepository, scorer port.SheetScorer, opts app.GradingOptions) *Container {
	userService := app.NewUserService(userRepo)
	gradingService := app.NewGradingService(userService, scorer, resultRepo, opts)

	return &Container{
		UserService:    userService,
		GradingService: gradingService,
	}
}

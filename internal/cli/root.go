package cli

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/auth"
	"github.com/alexanderramin/thea/internal/notify"
	"github.com/alexanderramin/thea/internal/transcribe"
	"github.com/spf13/cobra"
)

// App holds the use cases and process wiring used by CLI commands.
type App struct {
	Profiles app.ProfileUseCase
	Plans    app.PlanUseCase
	Status   app.StatusUseCase
	History  app.HistoryUseCase

	// DeviceID is the local identity every command acts as.
	DeviceID string

	// Optional; nil disables the feature.
	Transcriber transcribe.Transcriber
	Tokens      *auth.TokenIssuer
	Notifier    notify.Notifier
	Handler     http.Handler
	HTTPAddr    string

	Logger        *slog.Logger
	Now           func() time.Time
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// NewRootCmd creates the top-level "thea" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "thea",
		Short:         "Sick-day care planner for parents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetContext(context.Background())

	root.AddCommand(
		newOnboardCmd(a),
		newProfileCmd(a),
		newMedsCmd(a),
		newPlanCmd(a),
		newTodayCmd(a),
		newIncidentCmd(a),
		newDoneCmd(a),
		newSkipCmd(a),
		newHistoryCmd(a),
		newClassifyCmd(a),
		newServeCmd(a),
		newRemindCmd(a),
		newDeviceCmd(a),
	)

	return root
}

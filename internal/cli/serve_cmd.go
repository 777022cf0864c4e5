package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/notify"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Handler == nil {
				return errors.New("HTTP API is not configured; set THEA_JWT_SECRET")
			}
			if addr == "" {
				addr = a.HTTPAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           a.Handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				a.logger().Info("http api listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			a.logger().Info("shutting down http api")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from THEA_HTTP_ADDR)")
	return cmd
}

func newRemindCmd(a *App) *cobra.Command {
	var (
		once     bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send medication reminders as doses come due",
		RunE: func(cmd *cobra.Command, args []string) error {
			notifier := a.Notifier
			if notifier == nil {
				notifier = notify.LogNotifier{Logger: a.logger()}
			}
			d := notify.NewDispatcher(a.planSource(), notifier,
				notify.WithInterval(interval),
				notify.WithClock(a.now),
				notify.WithLogger(a.logger()),
			)
			if once {
				sent := d.Tick(cmd.Context())
				fmt.Fprintf(cmd.OutOrStdout(), "Sent %d reminder(s).\n", sent)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err := d.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Check once and exit")
	cmd.Flags().DurationVar(&interval, "interval", notify.DefaultInterval, "How often to check for due doses")
	return cmd
}

// planSource reads the device's plan for the dispatcher's current day.
func (a *App) planSource() notify.PlanSource {
	return func(ctx context.Context, now time.Time) ([]domain.PlanItem, error) {
		resp, err := a.Plans.Today(ctx, a.DeviceID, now.Format(domain.DateLayout))
		if err != nil {
			return nil, err
		}
		return resp.Items, nil
	}
}

func newDeviceCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Show this device's id",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.DeviceID)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "token",
		Short: "Issue an API token for this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Tokens == nil {
				return errors.New("tokens are not configured; set THEA_JWT_SECRET")
			}
			token, err := a.Tokens.Issue(a.DeviceID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	})
	return cmd
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/cli/formatter"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(a *App) *cobra.Command {
	var at clockFlag

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a fresh plan for the rest of today",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.GeneratePlanRequest{DeviceID: a.DeviceID, At: at.on(a.now())}
			resp, err := a.withSpinner(cmd, "Putting the day together", func(ctx context.Context) (*app.PlanResponse, error) {
				return a.Plans.Generate(ctx, req)
			})
			if err != nil {
				return describeError(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(resp, a.now()))
			return nil
		},
	}

	cmd.Flags().Var(&at, "at", "Plan from this time instead of now (HH:MM)")
	return cmd
}

func newIncidentCmd(a *App) *cobra.Command {
	var (
		category incidentFlag
		at       clockFlag
		describe string
	)

	cmd := &cobra.Command{
		Use:   "incident [DESCRIPTION...]",
		Short: "Report a change and rebuild the rest of the day",
		Example: `  thea incident --category "Threw up"
  thea incident she is burning up and won't drink
  thea incident --describe "won't eat lunch" --at 12:30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.GeneratePlanRequest{
				DeviceID: a.DeviceID,
				At:       at.on(a.now()),
				Incident: category.value,
			}
			switch {
			case cmd.Flags().Changed("describe"):
				req.Description = &describe
			case len(args) > 0:
				desc := strings.Join(args, " ")
				req.Description = &desc
			}
			if req.Incident == nil && req.Description == nil {
				return fmt.Errorf("describe what happened or pass --category (%s)", incidentChoices())
			}

			resp, err := a.withSpinner(cmd, "Adjusting the plan", func(ctx context.Context) (*app.PlanResponse, error) {
				return a.Plans.ReportIncident(ctx, req)
			})
			if err != nil {
				return describeError(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(resp, a.now()))
			return nil
		},
	}

	cmd.Flags().Var(&category, "category", "Incident category: "+incidentChoices())
	cmd.Flags().StringVar(&describe, "describe", "", "What happened, in your own words")
	cmd.Flags().Var(&at, "at", "When it happened (HH:MM)")
	return cmd
}

func newTodayCmd(a *App) *cobra.Command {
	var (
		date  dateFlag
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the day's plan, building it on first view",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := date.or(a.now())
			resp, err := a.Plans.Today(cmd.Context(), a.DeviceID, day)
			if err != nil {
				return describeError(err)
			}
			if a.interactive() && !plain && len(resp.Items) > 0 {
				return runTodayTUI(cmd.Context(), a, resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(resp, a.now()))
			return nil
		},
	}

	cmd.Flags().Var(&date, "date", "Day to show (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the plan instead of opening the checklist")
	return cmd
}

func newHistoryCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show past sick days",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.History.List(cmd.Context(), a.DeviceID)
			if err != nil {
				return describeError(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(records, a.now()))
			return nil
		},
	}
}

// withSpinner runs fn, animating on stderr when attached to a terminal.
func (a *App) withSpinner(cmd *cobra.Command, msg string, fn func(ctx context.Context) (*app.PlanResponse, error)) (*app.PlanResponse, error) {
	if a.interactive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), msg)
		defer stop()
	}
	return fn(cmd.Context())
}

// statusCmd builds the done and skip commands.
func statusCmd(a *App, use, short string, status domain.ItemStatus) *cobra.Command {
	var date dateFlag

	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := date.or(a.now())
			itemID, err := resolveItemID(cmd.Context(), a, day, args[0])
			if err != nil {
				return err
			}
			res, err := a.Status.UpdateStatus(cmd.Context(), app.UpdateStatusRequest{
				DeviceID: a.DeviceID,
				Date:     day,
				ItemID:   itemID,
				Status:   status,
			})
			if err != nil {
				return describeError(err)
			}
			if !res.Found {
				return fmt.Errorf("no item %s in the plan for %s", args[0], day)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItemUpdate(args[0], status, res))
			return nil
		},
	}

	cmd.Flags().Var(&date, "date", "Day the item belongs to (YYYY-MM-DD, default today)")
	return cmd
}

func newDoneCmd(a *App) *cobra.Command {
	return statusCmd(a, "done", "Mark a plan item completed", domain.StatusCompleted)
}

func newSkipCmd(a *App) *cobra.Command {
	return statusCmd(a, "skip", "Skip a plan item", domain.StatusSkipped)
}

// resolveItemID expands the short id shown in listings to a full item id
// using the stored plan only. An id that matches nothing is passed through
// unchanged.
func resolveItemID(ctx context.Context, a *App, date, id string) (string, error) {
	resp, err := a.Plans.Stored(ctx, a.DeviceID, date)
	if err != nil {
		return "", describeError(err)
	}
	var matches []string
	for _, it := range resp.Items {
		if it.ID == id {
			return id, nil
		}
		if strings.HasPrefix(it.ID, id) {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 0:
		return id, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d items match)", id, len(matches))
	}
}

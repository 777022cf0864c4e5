package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/thea/internal/cli/formatter"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/spf13/cobra"
)

func newMedsCmd(a *App) *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		resp, err := a.Profiles.GetProfile(cmd.Context(), a.DeviceID)
		if err != nil {
			return describeError(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMedications(resp.Medications))
		return nil
	}

	cmd := &cobra.Command{
		Use:   "meds",
		Short: "List or change medications",
		RunE:  list,
	}

	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List medications", RunE: list},
		newMedsAddCmd(a),
		newMedsRemoveCmd(a),
		newMedsClearCmd(a),
	)
	return cmd
}

func newMedsAddCmd(a *App) *cobra.Command {
	var name, dosage, every, last string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a medication, or update one with the same name",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Profiles.GetProfile(cmd.Context(), a.DeviceID)
			if err != nil {
				return describeError(err)
			}
			med := domain.Medication{
				Name:          strings.TrimSpace(name),
				Dosage:        strings.TrimSpace(dosage),
				Frequency:     domain.Frequency(strings.ToLower(every)),
				TimeLastGiven: last,
			}
			meds := upsertMedication(resp.Medications, med)
			saved, err := a.Profiles.SaveMedications(cmd.Context(), a.DeviceID, meds)
			if err != nil {
				return describeError(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMedications(saved.Medications))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Medication name")
	cmd.Flags().StringVar(&dosage, "dose", "", "Dosage, e.g. 5ml")
	cmd.Flags().StringVar(&every, "every", string(domain.Every6h), "Frequency: 4h, 6h, 8h, 12h")
	cmd.Flags().StringVar(&last, "last", "", "Time last given (HH:MM)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("dose")
	_ = cmd.MarkFlagRequired("last")

	return cmd
}

func newMedsRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a medication by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Profiles.GetProfile(cmd.Context(), a.DeviceID)
			if err != nil {
				return describeError(err)
			}
			kept := make([]domain.Medication, 0, len(resp.Medications))
			for _, m := range resp.Medications {
				if !strings.EqualFold(m.Name, args[0]) {
					kept = append(kept, m)
				}
			}
			if len(kept) == len(resp.Medications) {
				return fmt.Errorf("no medication named %q", args[0])
			}
			saved, err := a.Profiles.SaveMedications(cmd.Context(), a.DeviceID, kept)
			if err != nil {
				return describeError(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMedications(saved.Medications))
			return nil
		},
	}
}

func newMedsClearCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all medications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.Profiles.SaveMedications(cmd.Context(), a.DeviceID, nil); err != nil {
				return describeError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all medications.")
			return nil
		},
	}
}

// upsertMedication replaces an entry with the same name, or appends.
func upsertMedication(meds []domain.Medication, med domain.Medication) []domain.Medication {
	out := make([]domain.Medication, 0, len(meds)+1)
	replaced := false
	for _, m := range meds {
		if strings.EqualFold(m.Name, med.Name) {
			out = append(out, med)
			replaced = true
			continue
		}
		out = append(out, m)
	}
	if !replaced {
		out = append(out, med)
	}
	return out
}

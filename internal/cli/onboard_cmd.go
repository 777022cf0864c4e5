package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/cli/formatter"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/spf13/cobra"
)

func newOnboardCmd(a *App) *cobra.Command {
	var (
		name         string
		age          int
		illnesses    []string
		childEnergy  string
		parentEnergy string
		meds         medicationsFlag
	)

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set up the child's profile and medications",
		Long: `Set up the child's profile and medications.

Without flags on a terminal, a short wizard asks the questions. Medications
are given as --med name,dosage,frequency,last-given, e.g.
--med "Tylenol,5ml,6h,08:00".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.SaveProfileRequest{DeviceID: a.DeviceID}

			if name == "" {
				if !a.interactive() {
					return errors.New("--name is required when not running in a terminal")
				}
				ans := profileAnswers{childEnergy: domain.ChildEnergyMedium, parentEnergy: domain.ParentEnergyMedium}
				if err := profileForm(&ans).Run(); err != nil {
					return err
				}
				req.Profile = ans.toProfile()
				collected, err := runMedicationWizard()
				if err != nil {
					return err
				}
				req.Medications = collected
			} else {
				req.Profile = domain.ChildProfile{
					Name:              name,
					Age:               age,
					IllnessTypes:      toIllnessTypes(illnesses),
					ChildEnergyLevel:  domain.ChildEnergy(childEnergy),
					ParentEnergyLevel: domain.ParentEnergy(parentEnergy),
				}
				req.Medications = meds.meds
			}

			resp, err := a.Profiles.SaveProfile(cmd.Context(), req)
			if err != nil {
				return describeError(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatProfile(resp))
			fmt.Fprintln(out, formatter.Dim("Run `thea today` to see the plan."))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Child's name")
	cmd.Flags().IntVar(&age, "age", 0, "Child's age in years")
	cmd.Flags().StringSliceVar(&illnesses, "illness", nil, "Illness tag (repeatable): Cold, Flu, Stomach Bug, Fever, Cough, Ear Infection")
	cmd.Flags().StringVar(&childEnergy, "child-energy", string(domain.ChildEnergyMedium), "Child's energy: Low, Medium, Okay")
	cmd.Flags().StringVar(&parentEnergy, "parent-energy", string(domain.ParentEnergyMedium), "Your energy: Low, Medium, High")
	cmd.Flags().Var(&meds, "med", "Medication as name,dosage,frequency,last-given (repeatable)")

	return cmd
}

func toIllnessTypes(names []string) []domain.IllnessType {
	out := make([]domain.IllnessType, 0, len(names))
	for _, n := range names {
		out = append(out, domain.IllnessType(n))
	}
	return out
}

func newProfileCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the child's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Profiles.GetProfile(cmd.Context(), a.DeviceID)
			if err != nil {
				return describeError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(resp))
			return nil
		},
	}
}

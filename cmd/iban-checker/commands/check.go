package commands

import (
	"github.com/deppfellow/iban-checker/internal/iban"
	"github.com/deppfellow/iban-checker/internal/lib/utils"
	"github.com/deppfellow/iban-checker/internal/model"
	"github.com/spf13/cobra"
)

// checkResult is printed by the check command. Nothing is stored, so there
// is no id or timestamp.
type checkResult struct {
	Iban          string                 `json:"iban"`
	Country       string                 `json:"country"`
	Status        model.ValidationStatus `json:"status"`
	Partial       bool                   `json:"partial"`
	SuggestedIban *string                `json:"suggested_iban,omitempty"`
}

func checkCmd() *cobra.Command {
	var (
		partial bool
		country string
	)

	cmd := &cobra.Command{
		Use:   "check <iban>",
		Short: "Validate an IBAN offline and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := runCheck(iban.DefaultRegistry(), args[0], country, partial)
			return utils.PrintJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&partial, "partial", false, "accept incomplete input that could still become valid")
	cmd.Flags().StringVar(&country, "country", iban.CountryMontenegro, "country rule to apply")

	return cmd
}

func runCheck(registry *iban.Registry, candidate, country string, partial bool) checkResult {
	rule := registry.Rule(country)
	result := checkResult{
		Iban:    candidate,
		Country: rule.Country(),
		Partial: partial,
	}

	if partial {
		result.Status = model.StatusFromBool(rule.IsValidPartial(candidate))
		return result
	}

	result.Status = model.StatusFromBool(rule.IsValid(candidate))
	if result.Status == model.ValidationStatusNotValid {
		if suggestion, ok := rule.SuggestCorrection(candidate); ok {
			result.SuggestedIban = &suggestion
		}
	}

	return result
}

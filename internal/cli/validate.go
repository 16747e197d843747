package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfbx9da4/meanwhile/pkg/config"
	apperrors "github.com/mfbx9da4/meanwhile/pkg/errors"
)

// validateCommand creates the validate command for checking config documents.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config file]",
		Short: "Validate a config document",
		Long: `Validate a config document and report every problem found.

All field errors are collected and printed together, so one bad milestone
does not hide the next.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.Load(args[0])
			if err != nil {
				return fmt.Errorf("load config %s: %w", args[0], err)
			}

			if err := doc.Validate(); err != nil {
				var fieldErrs apperrors.FieldErrors
				if errors.As(err, &fieldErrs) {
					printError("%s has %d problem(s)", args[0], len(fieldErrs))
					for _, fe := range fieldErrs {
						printDetail("%s: %s", fe.Path, fe.Message)
					}
					return fmt.Errorf("validation failed")
				}
				return err
			}

			printSuccess("%s is valid", args[0])
			printStats(mustTotalDays(doc), len(doc.Milestones), false)
			return nil
		},
	}
}

// mustTotalDays returns the tracked day count, or zero when the dates
// cannot be parsed. Validation has already run at the call site.
func mustTotalDays(doc config.Document) int {
	n, err := doc.TotalDays()
	if err != nil {
		return 0
	}
	return n
}

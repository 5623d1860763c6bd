package commands

import (
	"encoding/json"
	"fmt"

	"github.com/ncobase/pagewalk/verify"
	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the verify command
func NewVerifyCommand(configFile *string) *cobra.Command {
	var maxPages int

	cmd := &cobra.Command{
		Use:   "verify",
		Args:  cobra.NoArgs,
		Short: "Check that the server honors min_id and since_id",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configFile)
			if err != nil {
				return err
			}
			defer a.close()

			if !cmd.Flags().Changed("max-pages") {
				maxPages = a.conf.Paging.MaxPages
			}

			ctx := cmd.Context()
			report, err := verify.Verify(ctx, a.notifications(nil), maxPages, a.pagingOptions()...)
			if err != nil {
				a.log.Errorf(ctx, "verify: %v", err)
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if failed := report.Failures(); len(failed) > 0 {
				for _, c := range failed {
					a.log.Warnf(ctx, "check %s failed (mode=%s): %s", c.Name, c.Mode, c.Detail)
				}
				return fmt.Errorf("%d of %d checks failed", len(failed), len(report.Checks))
			}
			a.log.Infof(ctx, "all %d checks passed", len(report.Checks))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "page cap for every traversal (default from config)")
	return cmd
}

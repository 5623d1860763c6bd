package commands

import (
	"encoding/json"
	"fmt"

	"github.com/ncobase/pagewalk/config"
	"github.com/ncobase/pagewalk/ecode"
	"github.com/ncobase/pagewalk/mastodon"
	"github.com/ncobase/pagewalk/paging"
	"github.com/spf13/cobra"
)

type notificationsFlags struct {
	minID        uint64
	sinceID      uint64
	maxPages     int
	limit        int
	resume       string
	types        []string
	excludeTypes []string
}

// summary is written to stderr after a traversal.
type summary struct {
	Mode       paging.Mode `json:"mode"`
	LowerBound uint64      `json:"lower_bound"`
	Items      int         `json:"items"`
	Iterations int         `json:"iterations"`
	Exhausted  bool        `json:"exhausted"`
	Resume     string      `json:"resume,omitempty"`
}

// NewNotificationsCommand creates the notifications command
func NewNotificationsCommand(configFile *string) *cobra.Command {
	var f notificationsFlags

	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"n"},
		Args:    cobra.NoArgs,
		Short:   "Fetch notifications page by page",
		Long: `Fetch the notifications of the authenticated user, newest first, following
the server's next links until the timeline ends or --max-pages pages were read.
Each notification is printed as one JSON line; a summary with a resume token
goes to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configFile)
			if err != nil {
				return err
			}
			defer a.close()

			req, err := f.request(cmd, a.conf.Paging)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			fetcher := a.notifications(&mastodon.NotificationFilter{
				Types:        f.types,
				ExcludeTypes: f.excludeTypes,
			})
			res, err := paging.Paginate(ctx, fetcher, req, a.pagingOptions()...)
			a.metrics.ObserveTraversal(res != nil && res.Exhausted, err)
			if err != nil {
				a.log.Errorf(ctx, "fetch notifications: %v", err)
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, n := range res.Items {
				if err := enc.Encode(n); err != nil {
					return err
				}
			}

			s := summary{
				Mode:       req.Mode,
				LowerBound: req.LowerBound,
				Items:      len(res.Items),
				Iterations: res.Iterations,
				Exhausted:  res.Exhausted,
			}
			if c, ok := res.Cursor(req); ok {
				s.Resume = paging.EncodeCursor(c)
			}
			return json.NewEncoder(cmd.ErrOrStderr()).Encode(s)
		},
	}

	cmd.Flags().Uint64Var(&f.minID, "min-id", 0, "return only notifications newer than this id, oldest side first")
	cmd.Flags().Uint64Var(&f.sinceID, "since-id", 0, "return only notifications newer than this id, newest side first")
	cmd.Flags().IntVar(&f.maxPages, "max-pages", 0, "maximum number of pages to fetch (default from config)")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "page size (default from config)")
	cmd.Flags().StringVar(&f.resume, "resume", "", "resume token printed by a previous capped run")
	cmd.Flags().StringSliceVar(&f.types, "types", nil, "notification types to include")
	cmd.Flags().StringSliceVar(&f.excludeTypes, "exclude-types", nil, "notification types to exclude")
	cmd.MarkFlagsMutuallyExclusive("min-id", "since-id")
	cmd.MarkFlagsMutuallyExclusive("resume", "min-id")
	cmd.MarkFlagsMutuallyExclusive("resume", "since-id")
	return cmd
}

// request merges the flags over the configured paging defaults.
func (f *notificationsFlags) request(cmd *cobra.Command, conf *config.Paging) (paging.Request, error) {
	maxPages := conf.MaxPages
	if cmd.Flags().Changed("max-pages") {
		maxPages = f.maxPages
	}
	limit := conf.Limit
	if cmd.Flags().Changed("limit") {
		limit = f.limit
	}
	if maxPages <= 0 {
		return paging.Request{}, ecode.InvalidArgument(ecode.FieldIsInvalid("max-pages"))
	}

	if f.resume != "" {
		c, err := paging.DecodeCursor(f.resume)
		if err != nil {
			return paging.Request{}, fmt.Errorf("invalid --resume: %w", err)
		}
		return c.Request(maxPages, limit), nil
	}

	mode, err := conf.ParsedMode()
	if err != nil {
		return paging.Request{}, err
	}
	req := paging.Request{Mode: mode, MaxPages: maxPages, Limit: limit}
	switch {
	case cmd.Flags().Changed("min-id"):
		req.Mode, req.LowerBound = paging.ModeMinID, f.minID
	case cmd.Flags().Changed("since-id"):
		req.Mode, req.LowerBound = paging.ModeSinceID, f.sinceID
	}
	return req, nil
}

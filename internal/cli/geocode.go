package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/rshade/solarcalc/internal/engine"
	"github.com/rshade/solarcalc/internal/geocode"
)

// NewGeocodeCmd creates the geocode command, which lists address candidates.
func NewGeocodeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "geocode <query>",
		Short: "List address candidates for a query",
		Example: `  solarcalc geocode "Brandenburger Tor, Berlin"
  solarcalc geocode Bergen --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := engine.ParseOutputFormat(output)
			if err != nil {
				return err
			}

			query := strings.TrimSpace(strings.Join(args, " "))
			if utf8.RuneCountInString(query) < geocode.MinQueryLength {
				return fmt.Errorf("%w: need at least %d characters", geocode.ErrQueryTooShort, geocode.MinQueryLength)
			}

			ctx := cmd.Context()
			candidates, err := newEngine(ctx, configFromContext(ctx)).ResolveAddress(ctx, query)
			if err != nil {
				return fmt.Errorf("address lookup failed: %w", err)
			}

			logger.Debug().Ctx(ctx).Str("query", query).Int("candidates", len(candidates)).Msg("geocode complete")
			return engine.RenderCandidates(cmd.OutOrStdout(), format, candidates)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	return cmd
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/solarcalc/internal/cache"
)

// NewCacheCmd creates the cache command group.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Geocoding cache commands"}
	cmd.AddCommand(newCacheClearCmd())
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached geocoding responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			if !cfg.Cache.Enabled {
				cmd.Printf("Cache is disabled, nothing to clear\n")
				return nil
			}

			store, err := cache.NewStore(cfg.Cache.Directory, true, time.Duration(cfg.Cache.TTLHours)*time.Hour)
			if err != nil {
				return fmt.Errorf("opening cache: %w", err)
			}
			if err = store.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}

			cmd.Printf("Cache cleared: %s\n", cfg.Cache.Directory)
			return nil
		},
	}
}

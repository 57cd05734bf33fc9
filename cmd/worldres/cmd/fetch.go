package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worldres/worldres"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <@namespace/name:version>...",
	Short: "Prefetch packages into the disk cache",
	Long:  "Download one or more packages from the registry so later compilations resolve them without network access.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if isOffline() {
		return fmt.Errorf("fetch requires network access, but offline mode is set")
	}

	specs := make([]worldres.PackageSpec, 0, len(args))
	for _, arg := range args {
		spec, err := worldres.ParseSpec(arg)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	logger := newLogger()
	r, err := worldres.New("",
		worldres.WithCacheDir(getCacheDir()),
		worldres.WithRegistry(getRegistry()),
		worldres.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if err := r.Prefetch(cmd.Context(), specs...); err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	logger.Info("fetch complete", "packages", len(specs))
	return nil
}

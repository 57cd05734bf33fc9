package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worldres/worldres"
	"github.com/worldres/worldres/internal/diskcache"
)

var cleanAll bool

var cleanCmd = &cobra.Command{
	Use:   "clean [@namespace/name:version]",
	Short: "Remove packages from the disk cache",
	Long:  "Remove one cached package version, or the whole cache with --all.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "remove the entire cache")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cache := diskcache.New(getCacheDir(), newLogger())

	if cleanAll {
		if len(args) > 0 {
			return fmt.Errorf("cannot combine --all with a package spec")
		}
		return cache.RemoveAll()
	}

	if len(args) == 0 {
		return fmt.Errorf("specify a package spec or --all")
	}
	spec, err := worldres.ParseSpec(args[0])
	if err != nil {
		return err
	}
	return cache.Remove(spec.Namespace, spec.Name, spec.Version.String())
}

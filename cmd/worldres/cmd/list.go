package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/worldres/worldres/internal/diskcache"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages in the disk cache",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cache := diskcache.New(getCacheDir(), newLogger())

	entries, err := cache.List()
	if err != nil {
		return fmt.Errorf("list cache: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("(no cached packages)")
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Version < b.Version
	})

	for _, e := range entries {
		fmt.Printf("@%s/%s:%s\t%d files\t%d bytes\n", e.Namespace, e.Name, e.Version, e.Files, e.Bytes)
	}
	return nil
}

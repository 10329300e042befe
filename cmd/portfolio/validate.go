package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/orbit"
	"github.com/phanxgames/orbit/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a catalog for problems",
	Long: `Loads the catalog and reports projects without images, with missing or
duplicate ids and, with --images, image references that cannot be fetched
or decoded. Exits non-zero when anything is wrong.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("images", false, "fetch every image and report failures")
	validateCmd.Flags().Int("concurrency", 8, "image fetches in flight with --images")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cat, err := loadCatalog(cfg)
	if err != nil {
		var verr *orbit.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		for _, p := range verr.Problems {
			fmt.Fprintf(out, "FAIL %s\n", p)
		}
		return fmt.Errorf("%d catalog problems", len(verr.Problems))
	}

	checkImages, _ := cmd.Flags().GetBool("images")
	if checkImages {
		limit, _ := cmd.Flags().GetInt("concurrency")
		problems, err := catalog.Check(cmd.Context(), cat.Items, cat.Fetcher(), limit)
		if err != nil {
			return err
		}
		for _, p := range problems {
			fmt.Fprintf(out, "FAIL %s\n", p)
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d broken images", len(problems))
		}
	}

	fmt.Fprintf(out, "OK %d projects, %d categories\n", len(cat.Items), len(cat.Categories))
	return nil
}

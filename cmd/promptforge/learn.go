package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// learnCmd folds one usage observation into a template's rating
func learnCmd() *cobra.Command {
	var (
		failure bool
		quality float64
	)

	cmd := &cobra.Command{
		Use:   "learn <template-id>",
		Short: "Record usage feedback for a template",
		Long: `Record one success or failure observation for a template. The
template rating moves toward the observation by the configured learning
rate, and the usage counter increments. An explicit --quality score in
[0,1] overrides the success/failure default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			d, err := buildDeps(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			var qualityPtr *float64
			if cmd.Flags().Changed("quality") {
				qualityPtr = &quality
			}

			tmpl, err := d.learner.Learn(ctx, args[0], !failure, qualityPtr)
			if err != nil {
				return fmt.Errorf("learning failed: %w", err)
			}

			fmt.Printf("Updated template: %s\n", tmpl.ID)
			fmt.Printf("Rating:      %.3f\n", tmpl.Rating)
			fmt.Printf("Usage count: %d\n", tmpl.UsageCount)

			return nil
		},
	}

	cmd.Flags().BoolVar(&failure, "failure", false, "Record a failed usage (default is success)")
	cmd.Flags().Float64VarP(&quality, "quality", "q", 0, "Observed quality in [0,1]")

	return cmd
}

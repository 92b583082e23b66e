package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// optimizeCmd rewrites a stored template through the optimization
// meta-prompt and persists the result as a new version
func optimizeCmd() *cobra.Command {
	var (
		purpose    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "optimize <template-id>",
		Short: "Optimize a stored prompt template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			d, err := buildDeps(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			tmpl, outcome, err := d.engine.OptimizeTemplate(ctx, args[0], purpose)
			if err != nil {
				return fmt.Errorf("optimization failed: %w", err)
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"template": tmpl,
					"outcome":  outcome,
				})
			}

			if !outcome.Improved {
				fmt.Println("No improvement found; template left unchanged.")
				for _, note := range outcome.Improvements {
					fmt.Printf("  - %s\n", note)
				}
				return nil
			}

			fmt.Printf("Optimized template: %s (now v%d)\n", tmpl.ID, tmpl.Version)
			fmt.Printf("Effectiveness score: %.0f\n", outcome.Score)
			for _, note := range outcome.Improvements {
				fmt.Printf("  - %s\n", note)
			}
			fmt.Println()
			fmt.Println(tmpl.Template)

			return nil
		},
	}

	cmd.Flags().StringVarP(&purpose, "purpose", "p", "", "Purpose hint for the optimizer")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")

	return cmd
}

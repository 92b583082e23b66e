package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halcyonlab/promptforge/internal/ports"
)

// generateCmd drafts a new prompt template from a purpose description
func generateCmd() *cobra.Command {
	var (
		category   string
		contextKVs []string
		autoOpt    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "generate <purpose>",
		Short: "Generate a new prompt template",
		Long: `Generate a prompt template for the given purpose using the
configured generation provider. Context hints can be passed as key=value
pairs and are folded into the meta-prompt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			d, err := buildDeps(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			hints, err := parseKeyValues(contextKVs)
			if err != nil {
				return err
			}

			tmpl, err := d.engine.Generate(ctx, ports.GenerateRequest{
				Purpose:      strings.Join(args, " "),
				Category:     category,
				Context:      hints,
				AutoOptimize: autoOpt,
			})
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(tmpl)
			}

			fmt.Printf("Created template: %s\n", tmpl.ID)
			fmt.Printf("Name:      %s\n", tmpl.Name)
			fmt.Printf("Category:  %s\n", tmpl.Category)
			if len(tmpl.Variables) > 0 {
				fmt.Printf("Variables: %s\n", strings.Join(tmpl.Variables, ", "))
			}
			fmt.Println()
			fmt.Println(tmpl.Template)

			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Template category (default \"general\")")
	cmd.Flags().StringArrayVar(&contextKVs, "context", nil, "Context hint as key=value (repeatable)")
	cmd.Flags().BoolVar(&autoOpt, "optimize", false, "Run an optimization pass on the fresh template")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the template as JSON")

	return cmd
}

// parseKeyValues splits key=value flags into a map.
func parseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid key=value pair: %q", pair)
		}
		out[key] = value
	}
	return out, nil
}

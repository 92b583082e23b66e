package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// listCmd lists stored templates
func listCmd() *cobra.Command {
	var (
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List prompt templates",
		Long:  `List stored templates ordered by rating, optionally filtered by category.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			d, err := buildDeps(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			templates, err := d.templates.List(ctx, category, limit, 0)
			if err != nil {
				return fmt.Errorf("failed to list templates: %w", err)
			}

			if len(templates) == 0 {
				fmt.Println("No templates found.")
				return nil
			}

			fmt.Printf("%-28s %-36s %-16s %-7s %-6s %s\n", "ID", "Name", "Category", "Rating", "Uses", "Version")
			fmt.Println(strings.Repeat("-", 104))
			for _, t := range templates {
				fmt.Printf("%-28s %-36s %-16s %-7.3f %-6d v%d\n",
					t.ID, t.Name, t.Category, t.Rating, t.UsageCount, t.Version)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category")
	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "Maximum number of templates to list")

	return cmd
}

// showCmd shows one template in full
func showCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <template-id>",
		Short: "Show a prompt template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			d, err := buildDeps(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			tmpl, err := d.templates.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load template: %w", err)
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(tmpl)
			}

			fmt.Printf("ID:          %s\n", tmpl.ID)
			fmt.Printf("Name:        %s\n", tmpl.Name)
			fmt.Printf("Category:    %s\n", tmpl.Category)
			fmt.Printf("Version:     %d\n", tmpl.Version)
			fmt.Printf("Rating:      %.3f\n", tmpl.Rating)
			fmt.Printf("Usage count: %d\n", tmpl.UsageCount)
			if len(tmpl.Variables) > 0 {
				fmt.Printf("Variables:   %s\n", strings.Join(tmpl.Variables, ", "))
			}
			if tmpl.Description != "" {
				fmt.Printf("Description: %s\n", tmpl.Description)
			}
			fmt.Println()
			fmt.Println(tmpl.Template)

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the template as JSON")

	return cmd
}

// exportCmd writes the whole template library to stdout or a file
func exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the template library",
		Long:  `Export all templates as JSON (default) or YAML.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			d, err := buildDeps(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			if err := d.templates.Export(ctx, out, format); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			if output != "" {
				fmt.Fprintf(os.Stderr, "Exported templates to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

// seedCmd installs the built-in starter templates
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the built-in starter templates",
		Long:  `Insert the built-in template library. Templates that already exist by name are skipped, so seeding is safe to repeat.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			d, err := buildDeps(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			inserted, err := d.templates.Seed(ctx)
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}

			fmt.Printf("Inserted %d templates.\n", inserted)
			return nil
		},
	}
}

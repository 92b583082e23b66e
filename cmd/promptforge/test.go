package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/halcyonlab/promptforge/internal/adapters/provider"
)

// testCmd runs a stored template against several providers and prints a
// comparison
func testCmd() *cobra.Command {
	var (
		providerList []string
		varKVs       []string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "test <template-id>",
		Short: "Test a template against multiple providers",
		Long: `Render a stored template with the given variable values and send
the result to every requested provider concurrently. Without --provider
every enabled provider is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			d, err := buildDeps(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			values, err := parseKeyValues(varKVs)
			if err != nil {
				return err
			}

			var requested []provider.Name
			if len(providerList) == 0 {
				requested = d.providers.Enabled()
			} else {
				for _, raw := range providerList {
					name, err := provider.Parse(raw)
					if err != nil {
						return err
					}
					requested = append(requested, name)
				}
			}

			report, err := d.tester.Execute(ctx, args[0], values, requested)
			if err != nil && report == nil {
				return fmt.Errorf("test failed: %w", err)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: some results were not persisted: %v\n", err)
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(report)
			}

			for _, warning := range report.Warnings {
				fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tMODEL\tSTATUS\tLATENCY\tTOKENS\tCOST\tQUALITY")
			for _, res := range report.Results {
				status := "ok"
				if !res.Succeeded() {
					status = res.ErrorKind
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%dms\t%d\t$%.6f\t%.2f\n",
					res.Provider, res.Model, status, res.LatencyMs, res.TokenCount, res.CostUSD, res.QualityScore)
			}
			w.Flush()
			fmt.Println()

			a := report.Analysis
			if a.AllFailed {
				fmt.Println("All providers failed.")
				return nil
			}
			fmt.Printf("Fastest:     %s (%dms)\n", a.Fastest, a.FastestMs)
			fmt.Printf("Cheapest:    %s\n", a.Cheapest)
			fmt.Printf("Avg latency: %dms\n", a.AvgLatencyMs)
			fmt.Printf("Recommended: %s\n", a.Recommended)
			if len(a.Failed) > 0 {
				fmt.Printf("Failed:      %s\n", strings.Join(a.Failed, ", "))
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&providerList, "provider", "p", nil, "Provider to test (repeatable; default all enabled)")
	cmd.Flags().StringArrayVar(&varKVs, "var", nil, "Template variable as key=value (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full report as JSON")

	return cmd
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// knowledgeCmd groups the knowledge base subcommands
func knowledgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Manage the knowledge base",
	}

	cmd.AddCommand(knowledgeAddCmd(), knowledgeListCmd())
	return cmd
}

func knowledgeAddCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "add <topic> <content>",
		Short: "Add a knowledge entry",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			d, err := buildDeps(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			entry, err := d.templates.AddKnowledge(ctx, args[0], strings.Join(args[1:], " "), source)
			if err != nil {
				return fmt.Errorf("failed to add knowledge: %w", err)
			}

			fmt.Printf("Added knowledge entry: %s\n", entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "Where this knowledge came from")

	return cmd
}

func knowledgeListCmd() *cobra.Command {
	var (
		topic string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List knowledge entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			d, err := buildDeps(ctx)
			if err != nil {
				return err
			}
			defer d.close()

			entries, err := d.templates.ListKnowledge(ctx, topic, limit)
			if err != nil {
				return fmt.Errorf("failed to list knowledge: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No knowledge entries found.")
				return nil
			}

			for _, e := range entries {
				fmt.Printf("%s  [%s]  relevance %.2f\n", e.ID, e.Topic, e.RelevanceScore)
				fmt.Printf("  %s\n", e.Content)
				if e.Source != "" {
					fmt.Printf("  source: %s\n", e.Source)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Filter by topic")
	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "Maximum number of entries to list")

	return cmd
}

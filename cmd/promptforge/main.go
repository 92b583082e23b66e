package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/halcyonlab/promptforge/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "promptforge",
		Short: "PromptForge - prompt template generation and testing",
		Long: `PromptForge generates, optimizes and benchmarks LLM prompt templates.

Templates are drafted by a meta-prompting provider, tested against
multiple providers concurrently, and their ratings improve from usage
feedback over time.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A .env in the working directory is optional.
			_ = godotenv.Load()

			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		generateCmd(),
		optimizeCmd(),
		testCmd(),
		learnCmd(),
		listCmd(),
		showCmd(),
		exportCmd(),
		seedCmd(),
		knowledgeCmd(),
		serveCmd(),
		configCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configCmd shows current configuration
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Current configuration:")
			fmt.Println()

			fmt.Println("Server:")
			fmt.Printf("  Host: %s\n", cfg.Server.Host)
			fmt.Printf("  Port: %d\n", cfg.Server.Port)
			fmt.Println()

			fmt.Println("Database:")
			fmt.Printf("  PostgreSQL: %s\n", maskSecret(cfg.Database.PostgresURL))
			fmt.Println()

			fmt.Println("Generation:")
			fmt.Printf("  Provider:    %s\n", cfg.Generation.Provider)
			fmt.Printf("  Max Tokens:  %d\n", cfg.Generation.MaxTokens)
			fmt.Printf("  Temperature: %.2f\n", cfg.Generation.Temperature)
			fmt.Println()

			fmt.Println("Testing:")
			fmt.Printf("  Timeout:        %ds\n", cfg.Testing.TimeoutSeconds)
			fmt.Printf("  Latency Weight: %.2f\n", cfg.Testing.LatencyWeight)
			fmt.Printf("  Cost Weight:    %.2f\n", cfg.Testing.CostWeight)
			fmt.Printf("  Quality Weight: %.2f\n", cfg.Testing.QualityWeight)
			fmt.Println()

			fmt.Println("Learning:")
			fmt.Printf("  Alpha: %.2f\n", cfg.Learning.Alpha)
			fmt.Println()

			fmt.Println("Providers:")
			for _, name := range []string{"anthropic", "openai", "deepseek", "groq", "gemini", "local"} {
				p := cfg.Providers[name]
				fmt.Printf("  %-10s %-9s key: %s", name, boolStatus(p.Enabled), maskSecret(p.APIKey))
				if p.Model != "" {
					fmt.Printf("  model: %s", p.Model)
				}
				fmt.Println()
			}
			fmt.Println()

			fmt.Println("Environment variables:")
			fmt.Println("  PROMPTFORGE_POSTGRES_URL, PROMPTFORGE_SERVER_HOST, PROMPTFORGE_SERVER_PORT")
			fmt.Println("  PROMPTFORGE_GENERATION_PROVIDER, PROMPTFORGE_GENERATION_MAX_TOKENS")
			fmt.Println("  PROMPTFORGE_TEST_TIMEOUT_SECONDS, PROMPTFORGE_LEARNING_ALPHA")
			fmt.Println("  ANTHROPIC_API_KEY, OPENAI_API_KEY, DEEPSEEK_API_KEY, GROQ_API_KEY, GEMINI_API_KEY")

			return nil
		},
	}
}

// versionCmd shows version information
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("PromptForge %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Build Date: %s\n", buildDate)
		},
	}
}

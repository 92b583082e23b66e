package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// GenerationSystem instructs the model to answer with a single JSON
// object; the parser tolerates fenced or prefixed replies anyway.
const GenerationSystem = `You are an expert prompt engineer. You design reusable prompt templates with {variable} placeholders for values that change between uses. Respond with a single JSON object and nothing else:
{
  "prompt_template": "the template text with {variable} placeholders",
  "variables": ["variable", "names"],
  "description": "one sentence on when to use this template"
}`

const OptimizationSystem = `You are an expert prompt engineer. You rewrite prompts to be clearer, more specific and more token-efficient without changing their intent. Keep every {variable} placeholder intact. Respond with a single JSON object and nothing else:
{
  "improved": true,
  "optimized_prompt": "the rewritten prompt",
  "improvements": ["what changed"],
  "effectiveness_score": 0,
  "reasoning": "one sentence"
}
effectiveness_score is your 0-100 estimate of the rewritten prompt's quality.`

// BuildGeneration renders the user half of the generation meta-prompt.
func BuildGeneration(purpose, category string, context map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a prompt template for the following purpose.\n\nPurpose: %s\nCategory: %s\n", purpose, category)
	if len(context) > 0 {
		b.WriteString("\nAdditional context:\n")
		keys := make([]string, 0, len(context))
		for k := range context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, context[k])
		}
	}
	b.WriteString("\nUse {variable} placeholders for every value that changes between uses.")
	return b.String()
}

// BuildOptimization renders the user half of the optimization meta-prompt.
func BuildOptimization(promptText, purpose string) string {
	var b strings.Builder
	b.WriteString("Rewrite the following prompt to be clearer, more specific and more efficient.\n")
	if purpose != "" {
		fmt.Fprintf(&b, "\nIntended purpose: %s\n", purpose)
	}
	fmt.Fprintf(&b, "\nPrompt:\n%s\n", promptText)
	return b.String()
}

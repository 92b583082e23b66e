package prompt

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrUnparseable = errors.New("could not parse model reply")

// GenerationReply is the parsed answer to the generation meta-prompt.
type GenerationReply struct {
	Template    string   `json:"prompt_template"`
	Variables   []string `json:"variables"`
	Description string   `json:"description"`
}

// OptimizationReply is the parsed answer to the optimization meta-prompt.
type OptimizationReply struct {
	Improved           bool     `json:"improved"`
	OptimizedPrompt    string   `json:"optimized_prompt"`
	Improvements       []string `json:"improvements"`
	EffectivenessScore float64  `json:"effectiveness_score"`
	Reasoning          string   `json:"reasoning"`
}

// ParseGenerationReply extracts the JSON object from a model reply.
// Models wrap JSON in code fences or prose preambles often enough that
// the parser hunts for the outermost object instead of trusting the raw
// body. Variables are always recomputed from the template text so the
// stored set matches the placeholders exactly.
func ParseGenerationReply(raw string) (*GenerationReply, error) {
	payload, ok := extractJSON(raw)
	if !ok {
		return nil, ErrUnparseable
	}
	var reply GenerationReply
	if err := json.Unmarshal(payload, &reply); err != nil {
		return nil, ErrUnparseable
	}
	if strings.TrimSpace(reply.Template) == "" {
		return nil, ErrUnparseable
	}
	reply.Variables = ExtractVariables(reply.Template)
	return &reply, nil
}

// ParseOptimizationReply extracts the optimization JSON. Scores are
// clamped to [0,100].
func ParseOptimizationReply(raw string) (*OptimizationReply, error) {
	payload, ok := extractJSON(raw)
	if !ok {
		return nil, ErrUnparseable
	}
	var reply OptimizationReply
	if err := json.Unmarshal(payload, &reply); err != nil {
		return nil, ErrUnparseable
	}
	if strings.TrimSpace(reply.OptimizedPrompt) == "" {
		return nil, ErrUnparseable
	}
	if reply.EffectivenessScore < 0 {
		reply.EffectivenessScore = 0
	}
	if reply.EffectivenessScore > 100 {
		reply.EffectivenessScore = 100
	}
	return &reply, nil
}

// extractJSON finds the first balanced top-level JSON object in raw,
// skipping code fences and surrounding prose.
func extractJSON(raw string) ([]byte, bool) {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if j := strings.Index(rest, "\n"); j >= 0 {
			rest = rest[j+1:]
		}
		if k := strings.Index(rest, "```"); k >= 0 {
			s = rest[:k]
		} else {
			s = rest
		}
	}

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return nil, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return []byte(s[start : i+1]), true
			}
		}
	}
	return nil, false
}

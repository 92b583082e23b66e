// Package id provides nanoid-based ID generation.
package id

import (
	nanoid "github.com/matoous/go-nanoid/v2"
)

const DefaultLength = 21

const (
	PrefixTemplate     = "tpl"
	PrefixTestResult   = "tr"
	PrefixOptimization = "opt"
	PrefixKnowledge    = "kb"
)

func New(prefix string) string {
	id, err := nanoid.New(DefaultLength)
	if err != nil {
		panic("nanoid generation failed: " + err.Error())
	}
	return prefix + "_" + id
}

// Generator implements ports.IDGenerator.
type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

func (Generator) TemplateID() string     { return New(PrefixTemplate) }
func (Generator) TestResultID() string   { return New(PrefixTestResult) }
func (Generator) OptimizationID() string { return New(PrefixOptimization) }
func (Generator) KnowledgeID() string    { return New(PrefixKnowledge) }

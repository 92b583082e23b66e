package services

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/halcyonlab/promptforge/internal/domain"
)

func newTemplateService() (*TemplateService, *memTemplateRepo, *memKnowledgeRepo) {
	repo := newMemTemplateRepo()
	kb := &memKnowledgeRepo{}
	return NewTemplateService(repo, kb, &seqIDs{}, nil), repo, kb
}

func TestSeedIsIdempotent(t *testing.T) {
	svc, repo, _ := newTemplateService()

	inserted, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(seedLibrary), inserted)

	// second run inserts nothing
	inserted, err = svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, inserted)

	templates, err := repo.List(context.Background(), "", 200, 0)
	require.NoError(t, err)
	assert.Len(t, templates, len(seedLibrary))
}

func TestSeedExtractsVariables(t *testing.T) {
	svc, repo, _ := newTemplateService()

	_, err := svc.Seed(context.Background())
	require.NoError(t, err)

	tmpl, err := repo.GetByName(context.Background(), "trading_technical_analysis")
	require.NoError(t, err)
	assert.Equal(t, []string{"symbol", "timeframe"}, tmpl.Variables)
}

func TestExportJSON(t *testing.T) {
	svc, _, _ := newTemplateService()
	_, err := svc.Seed(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf, "json"))

	var payload struct {
		Count     int `json:"count"`
		Templates []struct {
			Name string `json:"name"`
		} `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, len(seedLibrary), payload.Count)
	assert.Len(t, payload.Templates, len(seedLibrary))
}

func TestExportYAML(t *testing.T) {
	svc, _, _ := newTemplateService()
	_, err := svc.Seed(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf, "yaml"))

	var payload struct {
		Count int `yaml:"count"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, len(seedLibrary), payload.Count)
}

func TestExportUnknownFormat(t *testing.T) {
	svc, _, _ := newTemplateService()

	err := svc.Export(context.Background(), &bytes.Buffer{}, "xml")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestKnowledge(t *testing.T) {
	svc, _, kb := newTemplateService()

	entry, err := svc.AddKnowledge(context.Background(), "trading", "RSI above 70 is overbought", "manual")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(entry.ID, "kb_"))
	assert.Equal(t, 0.5, entry.RelevanceScore)

	_, err = svc.AddKnowledge(context.Background(), "", "content", "")
	assert.ErrorIs(t, err, domain.ErrEmptyTopic)

	_, err = svc.AddKnowledge(context.Background(), "topic", "  ", "")
	assert.ErrorIs(t, err, domain.ErrEmptyContent)

	entries, err := svc.ListKnowledge(context.Background(), "trading", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Len(t, kb.entries, 1)
}

func TestGetValidation(t *testing.T) {
	svc, _, _ := newTemplateService()

	_, err := svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.Get(context.Background(), "tpl_missing")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

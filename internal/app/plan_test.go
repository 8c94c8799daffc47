package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/cw-release/internal/domain"
)

func TestRenderPlan_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPlan(&buf, domain.DefaultPlan(), FormatText))

	assert.Equal(t, `base:
  1. cw-orc-contract-derive (packages/cw-orc-contract-derive)
  2. cw-orc-fns-derive (packages/cw-orc-fns-derive)
utility:
  3. cw-orc (cw-orc)
aggregate:
  4. cw-plus-orchestrate (cw-plus-orchestrate)
`, buf.String())
}

func TestRenderPlan_DefaultFormatIsText(t *testing.T) {
	var text, def bytes.Buffer
	require.NoError(t, RenderPlan(&text, domain.DefaultPlan(), FormatText))
	require.NoError(t, RenderPlan(&def, domain.DefaultPlan(), ""))
	assert.Equal(t, text.String(), def.String())
}

func TestRenderPlan_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPlan(&buf, domain.DefaultPlan(), FormatYAML))

	var decoded struct {
		Groups []domain.Group `yaml:"groups"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, domain.DefaultGroups(), decoded.Groups)
}

func TestRenderPlan_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPlan(&buf, domain.DefaultPlan(), "xml")
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

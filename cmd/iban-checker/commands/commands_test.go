package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/iban-checker/internal/iban"
	"github.com/deppfellow/iban-checker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCheck(t *testing.T) {
	registry := iban.DefaultRegistry()

	valid := runCheck(registry, "ME25 5050 0001 2345 6789 51", "", false)
	assert.Equal(t, model.ValidationStatusValid, valid.Status)
	assert.Equal(t, "ME", valid.Country)
	assert.Nil(t, valid.SuggestedIban)

	fixed := runCheck(registry, "ME99505000012345678951", "ME", false)
	assert.Equal(t, model.ValidationStatusNotValid, fixed.Status)
	require.NotNil(t, fixed.SuggestedIban)
	assert.Equal(t, "ME25505000012345678951", *fixed.SuggestedIban)

	partial := runCheck(registry, "ME2550", "ME", true)
	assert.Equal(t, model.ValidationStatusValid, partial.Status)
	assert.True(t, partial.Partial)
}

func TestCheckCommand_PrintsJSON(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"check", "ME2550500001234567895", "--partial"})

	require.NoError(t, root.Execute())

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "Valid", result["status"])
	assert.Equal(t, true, result["partial"])
	assert.NotContains(t, result, "suggested_iban")
}

func TestCheckCommand_RequiresArgument(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"check"})

	assert.Error(t, root.Execute())
}

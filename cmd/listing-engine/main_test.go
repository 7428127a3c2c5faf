package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-engine/internal/config"
)

const (
	testRules  = "../../internal/engine/testdata/rules/walmart_us_furniture.yaml"
	testSchema = "../../internal/engine/testdata/schemas/walmart_us.yaml"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestUsage(t *testing.T) {
	code, _, stderr := runCLI(t, "")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "usage:")

	code, _, stderr = runCLI(t, "", "publish")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "publish"`)
}

func TestHeuristicsCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "heuristics")
	require.Equal(t, exitOK, code)

	assert.Contains(t, stdout, "items_included")
	assert.Contains(t, stdout, "shipping_weight_extract")
}

func TestClassifyCommand(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "classify", "-schema", testSchema, "-category", "Furniture")
	require.Equal(t, exitOK, code, stderr)

	var formats map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &formats))

	assert.Equal(t, "measurementObject", formats["weight"])
	assert.Equal(t, "multiLangObject", formats["productName"])

	code, _, _ = runCLI(t, "", "classify", "-schema", testSchema, "-category", "Garden")
	assert.Equal(t, exitError, code)
}

func TestResolveCommand(t *testing.T) {
	rec := `{"title": "Sofa and Coffee Table Set of 2", "vendor": "Acme", "packageWeight": "5"}`

	code, stdout, stderr := runCLI(t, rec, "resolve", "-rules", testRules, "-schema", testSchema, "-sku", "SOFA-1", "-price", "10")
	require.Equal(t, exitOK, code, stderr)

	var env struct {
		Items []struct {
			Orderable map[string]any            `json:"Orderable"`
			Visible   map[string]map[string]any `json:"Visible"`
		} `json:"MPItem"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &env))
	require.Len(t, env.Items, 1)

	assert.Equal(t, "SOFA-1", env.Items[0].Orderable["sku"])
	assert.Equal(t, map[string]any{"unit": "lb", "magnitude": 5.0}, env.Items[0].Visible["Furniture"]["weight"])
}

func TestResolveCommandUnresolved(t *testing.T) {
	code, stdout, _ := runCLI(t, `{}`, "resolve", "-rules", testRules, "-schema", testSchema)
	assert.Equal(t, exitUnresolved, code)
	assert.Contains(t, stdout, "MPItemFeedHeader")
}

func TestResolveCommandRequiresRules(t *testing.T) {
	code, _, stderr := runCLI(t, `{}`, "resolve")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "-rules is required")
}

func TestCheckCommand(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "check", "-rules", testRules, "-schema", testSchema)
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "unknown_attribute")
	assert.Contains(t, stdout, "warrantyURL")

	code, _, _ = runCLI(t, "", "check")
	assert.Equal(t, exitUsage, code)
}

func TestLoggerFormatFollowsEnv(t *testing.T) {
	cfg := config.Default()

	var local bytes.Buffer
	newLogger(cfg, &local).Info("ready")
	assert.Contains(t, local.String(), "level=INFO msg=ready")

	cfg.Env = "production"

	var prod bytes.Buffer
	newLogger(cfg, &prod).Info("ready")

	var line map[string]any
	require.NoError(t, json.Unmarshal(prod.Bytes(), &line))
	assert.Equal(t, "ready", line["msg"])
}

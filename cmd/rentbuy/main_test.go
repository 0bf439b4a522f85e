package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "rentbuy", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, expected := range []string{"simulate", "calibrate", "compare", "break-even", "validate", "init", "version"} {
		assert.Contains(t, names, expected)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, _, err := execute(t, "invalid-command")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rentbuy dev")
}

func TestSimulateCommand_CSV(t *testing.T) {
	stdout, stderr, err := execute(t, "simulate", filepath.Join("testdata", "small.yaml"), "--format", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+5*13)
	assert.Equal(t, "Scenario", rows[0][0])
	assert.Equal(t, "HomeStatus", rows[0][9])
	assert.Equal(t, []string{"4", "12"}, rows[len(rows)-1][:2])

	assert.Contains(t, stderr, "calibrated buy probability")
}

func TestSimulateCommand_Deterministic(t *testing.T) {
	config := filepath.Join("testdata", "small.yaml")
	first, _, err := execute(t, "simulate", config, "-f", "csv", "--seed", "99", "--workers", "1")
	require.NoError(t, err)
	second, _, err := execute(t, "simulate", config, "-f", "csv", "--seed", "99", "--workers", "3")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulateCommand_Console(t *testing.T) {
	stdout, _, err := execute(t, "simulate", filepath.Join("testdata", "small.yaml"), "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "RENT VS BUY SIMULATION")
	assert.Contains(t, stdout, "Median return:")
}

func TestSimulateCommand_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	stdout, _, err := execute(t, "simulate", filepath.Join("testdata", "small.yaml"), "-f", "json", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"horizonMonths": 12`)
}

func TestSimulateCommand_UnknownFormat(t *testing.T) {
	_, _, err := execute(t, "simulate", filepath.Join("testdata", "small.yaml"), "-f", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestSimulateCommand_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("household:\n  monthly_rent: -5\n"), 0644))

	_, _, err := execute(t, "simulate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monthly_rent")
}

func TestCalibrateCommand(t *testing.T) {
	stdout, _, err := execute(t, "calibrate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Buy probability:   0.0350")
	assert.Contains(t, stdout, "Rent probability:  0.9650")

	_, _, err = execute(t, "calibrate", "--target", "0")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	stdout, _, err := execute(t, "validate", filepath.Join("testdata", "small.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")

	_, _, err = execute(t, "validate", filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentbuy.yaml")

	_, _, err := execute(t, "init", path)
	require.NoError(t, err)

	stdout, _, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")

	_, _, err = execute(t, "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "init", path, "--force")
	assert.NoError(t, err)
}

func TestInitCommand_Stdout(t *testing.T) {
	stdout, _, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rate_table:")
	assert.Contains(t, stdout, "horizon_months: 60")
}

func TestCompareCommand_ListTemplates(t *testing.T) {
	stdout, _, err := execute(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Available Templates:")
	assert.Contains(t, stdout, "rates_up_1pt")
}

func TestCompareCommand_CSV(t *testing.T) {
	stdout, _, err := execute(t, "compare", filepath.Join("testdata", "small.yaml"),
		"--with", "rates_up_1pt", "--transform", "scale_rent:factor=1.2", "--format", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"small", "base", "5"}, rows[1][:3])
	assert.Equal(t, "rates_up_1pt", rows[2][0])
	assert.Equal(t, "scale_rent:factor=1.2", rows[3][0])
}

func TestCompareCommand_Table(t *testing.T) {
	small := filepath.Join("testdata", "small.yaml")
	stdout, _, err := execute(t, "compare", small, small)
	require.NoError(t, err)
	assert.Contains(t, stdout, "RENT VS BUY SCENARIO COMPARISON")
	assert.Contains(t, stdout, "small (base)")
	// same file, same seed: nothing moves
	assert.Contains(t, stdout, "Median return:     $0")
}

func TestCompareCommand_Errors(t *testing.T) {
	small := filepath.Join("testdata", "small.yaml")

	_, _, err := execute(t, "compare", small)
	assert.ErrorContains(t, err, "nothing to compare")

	_, _, err = execute(t, "compare", small, "--with", "no_such_template")
	assert.Error(t, err)

	_, _, err = execute(t, "compare", small, "--with", "hot_market", "--format", "xml")
	assert.Error(t, err)
}

func TestBreakEvenCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, "break-even", filepath.Join("testdata", "small.yaml"),
		"--target", "rent", "--max-iterations", "2", "--format", "json")
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "rent", results[0]["target"])
	assert.Equal(t, float64(7), results[0]["seed"])
}

func TestBreakEvenCommand_Table(t *testing.T) {
	stdout, _, err := execute(t, "breakeven", filepath.Join("testdata", "small.yaml"),
		"--target", "price", "--min", "500000", "--max", "700000", "--max-iterations", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "BREAK-EVEN ANALYSIS")
	assert.Contains(t, stdout, "$500,000 to $700,000")
}

func TestBreakEvenCommand_Errors(t *testing.T) {
	small := filepath.Join("testdata", "small.yaml")

	_, _, err := execute(t, "break-even", small, "--target", "savings")
	assert.Error(t, err)

	_, _, err = execute(t, "break-even", small, "--target", "price", "--min", "abc")
	assert.ErrorContains(t, err, "invalid --min")

	_, _, err = execute(t, "break-even", small, "--format", "xml")
	assert.Error(t, err)
}

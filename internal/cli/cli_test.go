package cli

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChuLiYu/attgen/internal/export"
	"github.com/ChuLiYu/attgen/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCLI(t *testing.T) {
	cmd := BuildCLI()

	assert.NotNil(t, cmd, "BuildCLI should return a non-nil command")
	assert.Equal(t, "attgen", cmd.Use, "Root command should be 'attgen'")
	assert.Equal(t, "1.0.0", cmd.Version, "Version should be 1.0.0")

	commands := cmd.Commands()
	assert.Len(t, commands, 1, "Should have 1 subcommand")
	assert.Equal(t, "generate", commands[0].Use)

	configFlag := cmd.PersistentFlags().Lookup("config")
	assert.NotNil(t, configFlag, "Should have --config flag")
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "", configFlag.DefValue, "Config file should be optional")
}

func TestBuildGenerateCommand(t *testing.T) {
	cmd := buildGenerateCommand()

	assert.Equal(t, "generate", cmd.Use)
	assert.NotNil(t, cmd.RunE, "RunE function should be set")

	outputFlag := cmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.Equal(t, "data.csv", outputFlag.DefValue)

	for _, name := range []string{"start", "end", "seed", "metrics-file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "Should have --%s flag", name)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "data.csv", cfg.Output)
	assert.Equal(t, "2025-07-31 15:00:00", cfg.Window.Start)
	assert.Equal(t, "2025-11-20 11:51:46", cfg.Window.End)
	assert.Zero(t, cfg.Seed)

	start, end, err := cfg.window()
	require.NoError(t, err)
	assert.True(t, generator.DefaultStart.Equal(start))
	assert.True(t, generator.DefaultEnd.Equal(end))
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "attgen.yaml")
	configContent := `
output: "fixtures/attendance.csv"
window:
  start: "2025-12-01T00:00:00+09:00"
seed: 42
metrics_file: "attgen.prom"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := loadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "fixtures/attendance.csv", cfg.Output)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "attgen.prom", cfg.MetricsFile)
	// unset keys keep their defaults
	assert.Equal(t, "2025-11-20 11:51:46", cfg.Window.End)

	start, _, err := cfg.window()
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 11, 30, 15, 0, 0, 0, time.UTC).Equal(start))
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := loadConfig("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("window: [unclosed"), 0644))

	cfg, err := loadConfig(configPath)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 7, 31, 15, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2025-07-31 15:00:00",
		"2025-07-31T15:00:00",
		"2025-07-31T15:00:00Z",
		"2025-08-01T00:00:00+09:00",
		" 2025-07-31 15:00:00 ",
	} {
		got, err := parseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%q parsed as %s", in, got)
	}

	day, err := parseTimestamp("2026-02-01")
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).Equal(day))

	_, err = parseTimestamp("last tuesday")
	assert.True(t, errors.Is(err, ErrInvalidTimestamp))
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile = ""
	cmd := BuildCLI()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCommand_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "data.csv")
	metricsFile := filepath.Join(dir, "attgen.prom")

	out, err := runCLI(t, "generate", "-o", output, "--seed", "7", "--metrics-file", metricsFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Records split at a month end: 3")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(rows), 2)
	assert.Equal(t, export.Header, rows[0])

	first := rows[1]
	assert.Equal(t, "19d544de-3046-40bb-8cd4-8b311f665210", first[0])
	assert.Equal(t, "1", first[1])
	assert.Regexp(t, `^2025-07-31 15:00:00\.\d{3}\+00$`, first[2])

	last := rows[len(rows)-1]
	assert.Equal(t, "", last[3], "last record should be open")
	for _, row := range rows[1 : len(rows)-1] {
		assert.NotEmpty(t, row[3])
	}

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "attgen_month_splits_total 3")
}

func TestGenerateCommand_SameSeedSameFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")

	_, err := runCLI(t, "generate", "-o", a, "--seed", "99")
	require.NoError(t, err)
	_, err = runCLI(t, "generate", "-o", b, "--seed", "99")
	require.NoError(t, err)

	dataA, err := os.ReadFile(a)
	require.NoError(t, err)
	dataB, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, dataA, dataB)
}

func TestGenerateCommand_ConfigAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "attgen.yaml")
	fromConfig := filepath.Join(dir, "config.csv")
	fromFlag := filepath.Join(dir, "flag.csv")
	content := "output: " + fromConfig + "\nwindow:\n  start: \"2025-09-01 00:00:00\"\n  end: \"2025-09-05 00:00:00\"\nseed: 3\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	_, err := runCLI(t, "-c", configPath, "generate")
	require.NoError(t, err)
	assert.FileExists(t, fromConfig)

	_, err = runCLI(t, "-c", configPath, "generate", "-o", fromFlag)
	require.NoError(t, err)
	assert.FileExists(t, fromFlag)

	data, err := os.ReadFile(fromFlag)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025-09-01 00:00:00.")
}

func TestGenerateCommand_InvalidRange(t *testing.T) {
	output := filepath.Join(t.TempDir(), "data.csv")

	_, err := runCLI(t, "generate", "-o", output, "--start", "2025-11-20 11:51:46", "--end", "2025-07-31 15:00:00")
	require.Error(t, err)

	var rangeErr *generator.InvalidRangeError
	assert.True(t, errors.As(err, &rangeErr))
	assert.NoFileExists(t, output)
}

func TestGenerateCommand_InvalidTimestamp(t *testing.T) {
	_, err := runCLI(t, "generate", "-o", filepath.Join(t.TempDir(), "data.csv"), "--start", "yesterday")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTimestamp))
}

func TestGenerateCommand_UnwritableOutput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "missing", "data.csv")

	_, err := runCLI(t, "generate", "-o", output, "--seed", "1")
	require.Error(t, err)

	var writeErr *export.WriteError
	assert.True(t, errors.As(err, &writeErr))
}

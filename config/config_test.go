package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/date"
	"github.com/convexa/clientbook/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
alert_window_days = 15
reference_date = "2025-07-01"

[format]
symbol = "US$"

[labels]
overdue = "Atrasado"

[source]
csv_separator = ";"
sheet = "Carteiras"

[aliases]
client_name = ["cliente", "nome"]
advisor_name = ["assessor"]
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30, cfg.AlertWindowDays)
	assert.Equal(t, format.DefaultConvention, cfg.Convention())
	assert.Equal(t, clientbook.DefaultAliases(), cfg.AliasesFor())

	opts, err := cfg.StatusOptions()
	require.NoError(t, err)
	assert.True(t, opts.Reference.IsZero())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeFile(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.AlertWindowDays)
	opts, err := cfg.StatusOptions()
	require.NoError(t, err)
	assert.Equal(t, clientbook.StatusOptions{Reference: date.New(2025, time.July, 1), AlertWindowDays: 15}, opts)

	conv := cfg.Convention()
	assert.Equal(t, "US$", conv.Symbol)
	assert.Equal(t, ",", conv.Decimal, "unset keys keep their default")
	assert.Equal(t, "Atrasado", conv.Labels.Overdue)
	assert.Equal(t, "On track", conv.Labels.OnTrack)

	src := cfg.SourceOptions()
	assert.Equal(t, ';', src.Comma)
	assert.Equal(t, "Carteiras", src.Sheet)

	aliases := cfg.AliasesFor()
	assert.Equal(t, []string{"cliente", "nome"}, aliases.Of(clientbook.ClientName))
	assert.Equal(t, []string{"assessor"}, aliases.Of(clientbook.AdvisorName))
	assert.Equal(t, clientbook.DefaultAliases().Of(clientbook.AssetsValue), aliases.Of(clientbook.AssetsValue))
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("CLIENTBOOK_ALERT_WINDOW_DAYS", "45")
	t.Setenv("CLIENTBOOK_FORMAT_SYMBOL", "€")
	t.Setenv("CLIENTBOOK_SERVER_ADDR", "127.0.0.1:9000")

	cfg, err := Load(writeFile(t, sample))
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.AlertWindowDays)
	assert.Equal(t, "€", cfg.Format.Symbol)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "Carteiras", cfg.Source.Sheet)
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		name, content string
	}{
		{"syntax", "alert_window_days = "},
		{"negative window", "alert_window_days = -1"},
		{"log level", `log_level = "verbose"`},
		{"reference date", `reference_date = "soon"`},
		{"unknown field", "[aliases]\nclient = [\"cliente\"]"},
		{"no alias", "[aliases]\nclient_name = []"},
		{"separator", "[source]\ncsv_separator = \";;\""},
		{"template", "[format]\ntemplate = \"$\""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadIgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("SYMBOL", "EUR")
	t.Setenv("LOG_LEVEL", "trace")
	t.Setenv("FORMAT_SYMBOL", "EUR")
	t.Setenv("SHEET", "Other")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadSplitWordsEnv(t *testing.T) {
	t.Setenv("CLIENTBOOK_FORMAT_PERCENT_SUFFIX", "%")
	t.Setenv("CLIENTBOOK_SOURCE_CSV_SEPARATOR", "|")
	t.Setenv("CLIENTBOOK_LABELS_NO_DATE", "Sem data")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "%", cfg.Format.PercentSuffix)
	assert.Equal(t, '|', cfg.SourceOptions().Comma)
	assert.Equal(t, "Sem data", cfg.Labels.NoDate)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("CLIENTBOOK_ALERT_WINDOW_DAYS", "a month")
	_, err := Load()
	assert.Error(t, err)
}

func TestExampleFile(t *testing.T) {
	cfg, err := Load("../clientbook.example.toml")
	require.NoError(t, err)
	assert.Equal(t, "Em dia", cfg.Convention().Labels.OnTrack)

	cols := []string{"Cliente", "Assessor", "Patrimonio_FIIs", "Rentabilidade_12m", "Dividendos_12m", "Ultimo_Rebalanceamento", "Proximo_Rebalanceamento"}
	m, err := cfg.AliasesFor().Resolve(cols)
	require.NoError(t, err)
	assert.Equal(t, "Patrimonio_FIIs", m[clientbook.AssetsValue])
}

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wareki/internal/server"
	"github.com/mesh-intelligence/wareki/pkg/types"
)

// env is an isolated config and data directory pair.
type env struct {
	configDir string
	dataDir   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	for _, key := range []string{"LOCALE", "LOG_LEVEL", "LOG_FORMAT", "ADDR", "RESOURCE_DIR", "ERAS_FILE", "CONFIG_DIR", "DATA_DIR"} {
		t.Setenv(envPrefix+"_"+key, "")
	}
	return env{configDir: t.TempDir(), dataDir: t.TempDir()}
}

// run executes the CLI in e and returns the exit code, stdout and stderr.
func (e env) run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, argv...)
	code := run(full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := newEnv(t).run(t, "version")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "wareki v")
	assert.Contains(t, out, modulePath)
}

func TestConvert(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name     string
		argv     []string
		wantCode int
		wantOut  string
	}{
		{"meiji start", []string{"convert", "1873-01-01"}, exitSuccess, "M06.01.01\t明治6年1月1日\n"},
		{"heisei first year", []string{"convert", "1989-01-08"}, exitSuccess, "H01.01.08\t平成元年1月8日\n"},
		{"english", []string{"convert", "2019-05-01", "--locale", "en"}, exitSuccess, "R01.05.01\tReiwa 1/5/1\n"},
		{"before calendar start", []string{"convert", "1872-12-31"}, exitUserError, ""},
		{"malformed date", []string{"convert", "1989/01/08"}, exitUserError, ""},
		{"missing argument", []string{"convert"}, exitUserError, ""},
		{"bad locale", []string{"convert", "1989-01-08", "--locale", "!!"}, exitSysError, ""},
		{"unknown flag", []string{"convert", "1989-01-08", "--nope"}, exitUserError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, stderr := e.run(t, tt.argv...)
			require.Equal(t, tt.wantCode, code, stderr)
			if tt.wantCode == exitSuccess {
				assert.Equal(t, tt.wantOut, out)
			} else {
				assert.Contains(t, stderr, "Error:")
			}
		})
	}
}

func TestConvert_JSON(t *testing.T) {
	code, out, stderr := newEnv(t).run(t, "convert", "1989-01-07", "--json")
	require.Equal(t, exitSuccess, code, stderr)

	var v server.DateView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "S64.01.07", v.Display)
	assert.Equal(t, "Showa", v.Era)
	assert.Equal(t, 64, v.YearOfEra)
	assert.Equal(t, "昭和64年1月7日", v.Localized)
}

func TestToISO(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		argv     []string
		wantCode int
		wantOut  string
	}{
		{[]string{"to-iso", "Showa", "64", "1", "7"}, exitSuccess, "1989-01-07\n"},
		{[]string{"to-iso", "H", "1", "1", "8"}, exitSuccess, "1989-01-08\n"},
		{[]string{"to-iso", "5", "1", "5", "1"}, exitSuccess, "2019-05-01\n"},
		{[]string{"to-iso", "M", "45", "7", "30"}, exitSuccess, "1912-07-30\n"},
		{[]string{"to-iso", "H", "x", "1", "8"}, exitUserError, ""},
		{[]string{"to-iso", "Edo", "1", "1", "1"}, exitUserError, ""},
		{[]string{"to-iso", "H", "0", "1", "1"}, exitUserError, ""},
		{[]string{"to-iso", "H", "1", "2", "30"}, exitUserError, ""},
		{[]string{"to-iso-yday", "R", "1", "121"}, exitSuccess, "2019-05-01\n"},
		{[]string{"to-iso-yday", "R", "1", "367"}, exitUserError, ""},
		{[]string{"parse", "S64.01.07"}, exitSuccess, "1989-01-07\n"},
		{[]string{"parse", "S64-01-07"}, exitUserError, ""},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.argv, " "), func(t *testing.T) {
			code, out, stderr := e.run(t, tt.argv...)
			require.Equal(t, tt.wantCode, code, stderr)
			if tt.wantCode == exitSuccess {
				assert.Equal(t, tt.wantOut, out)
			}
		})
	}
}

func TestToday(t *testing.T) {
	e := newEnv(t)

	code, out, stderr := e.run(t, "today", "--tz", "Asia/Tokyo")
	require.Equal(t, exitSuccess, code, stderr)
	assert.True(t, strings.HasPrefix(out, "R"), out)

	code, _, _ = e.run(t, "today", "--tz", "Mars/Olympus")
	assert.Equal(t, exitUserError, code)
}

func TestInitAndCatalog(t *testing.T) {
	e := newEnv(t)

	code, out, stderr := e.run(t, "init")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, out, "1 eras imported")
	assert.FileExists(t, filepath.Join(e.configDir, "config.yaml"))
	assert.FileExists(t, filepath.Join(e.configDir, "eras.yaml"))
	assert.FileExists(t, filepath.Join(e.dataDir, "eras.jsonl"))

	// Idempotent.
	code, out, stderr = e.run(t, "init")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, out, "0 eras imported")

	code, out, stderr = e.run(t, "eras", "list", "--json")
	require.Equal(t, exitSuccess, code, stderr)
	var views []server.EraView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 5)
	assert.Equal(t, "令和", views[4].LongName)
	assert.Equal(t, "2019-04-30", views[3].Until)

	code, out, stderr = e.run(t, "eras", "add", "Future", "F", "2100-01-01")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Equal(t, "added era 6 Future (F) from 2100-01-01\n", out)

	// No localized name ships for the new era; display still works.
	code, out, stderr = e.run(t, "convert", "2100-03-01")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Equal(t, "F01.03.01\n", out)

	code, _, _ = e.run(t, "eras", "add", "Gap", "G", "2200-01-01", "--value", "9")
	assert.Equal(t, exitSysError, code)

	code, out, _ = e.run(t, "eras", "list")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "Future")
	assert.NotContains(t, out, "Gap")
}

func TestErasImport(t *testing.T) {
	e := newEnv(t)
	file := filepath.Join(t.TempDir(), "eras.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`eras:
  - {value: 1, name: Meiji, abbr: M, since: 1868-01-01}
  - {value: 2, name: Taisho, abbr: T, since: 1912-07-30}
  - {value: 3, name: Showa, abbr: S, since: 1926-12-25}
  - {value: 4, name: Heisei, abbr: H, since: 1989-01-08}
  - {value: 5, name: Reiwa, abbr: R, since: 2019-05-01}
`), 0o644))

	code, out, stderr := e.run(t, "eras", "import", file)
	require.Equal(t, exitSuccess, code, stderr)
	assert.Equal(t, "imported 1 eras\n", out)

	require.NoError(t, os.WriteFile(file, []byte("eras:\n  - {value: 1, name: Edo, abbr: E, since: 1603-03-24}\n"), 0o644))
	code, _, _ = e.run(t, "eras", "import", file)
	assert.Equal(t, exitSysError, code)
}

func TestErasFile(t *testing.T) {
	e := newEnv(t)
	file := filepath.Join(t.TempDir(), "eras.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`eras:
  - {value: 1, name: Meiji, abbr: M, since: 1868-01-01}
  - {value: 2, name: Taisho, abbr: T, since: 1912-07-30}
  - {value: 3, name: Showa, abbr: S, since: 1926-12-25}
  - {value: 4, name: Heisei, abbr: H, since: 1989-01-08}
`), 0o644))

	// Without Reiwa, 2019-05-01 is still Heisei.
	code, out, stderr := e.run(t, "--eras-file", file, "convert", "2019-05-01")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Equal(t, "H31.05.01\t平成31年5月1日\n", out)

	require.NoError(t, os.WriteFile(file, []byte("eras:\n  - {value: 2, name: Taisho, abbr: T, since: 1912-07-30}\n"), 0o644))
	code, _, _ = e.run(t, "--eras-file", file, "convert", "2019-05-01")
	assert.Equal(t, exitSysError, code)

	// A misspelled key must not fall back to the built-in eras.
	require.NoError(t, os.WriteFile(file, []byte("era:\n  - {value: 5, name: Reiwa, abbr: R, since: 2019-05-01}\n"), 0o644))
	code, out, stderr = e.run(t, "--eras-file", file, "convert", "2019-05-01")
	assert.Equal(t, exitSysError, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "invalid era config")
}

func TestErasListYAML(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "init")
	require.Equal(t, exitSuccess, code, stderr)

	code, out, stderr := e.run(t, "eras", "list", "--yaml")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, out, "name: Reiwa")

	// The output feeds back into eras import.
	file := filepath.Join(t.TempDir(), "exported.yaml")
	require.NoError(t, os.WriteFile(file, []byte(out), 0o644))
	code, out, stderr = e.run(t, "eras", "import", file)
	require.Equal(t, exitSuccess, code, stderr)
	assert.Equal(t, "imported 0 eras\n", out)

	code, _, _ = e.run(t, "eras", "list", "--yaml", "--json")
	assert.Equal(t, exitUserError, code)
}

func TestConfigFile(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"),
		[]byte("locale: en\nlog_level: error\n"), 0o644))

	code, out, stderr := e.run(t, "convert", "1989-01-08")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Equal(t, "H01.01.08\tHeisei 1/1/8\n", out)

	t.Setenv("WAREKI_LOCALE", "ja")
	code, out, _ = e.run(t, "convert", "1989-01-08")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "H01.01.08\t平成元年1月8日\n", out)

	code, _, _ = e.run(t, "--log-level", "loud", "version")
	assert.Equal(t, exitUserError, code)

	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte("locale: [\n"), 0o644))
	code, _, _ = e.run(t, "version")
	assert.Equal(t, exitSysError, code)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"usage", usageError{errors.New("bad flag")}, exitUserError},
		{"domain", types.ErrUnsupportedDate, exitUserError},
		{"wrapped domain", errors.Join(errors.New("convert"), types.ErrInvalidYearOfEra), exitUserError},
		{"configuration", types.ErrInvalidEraConfig, exitSysError},
		{"resource", types.ErrMissingLocalizedName, exitSysError},
		{"other", errors.New("disk full"), exitSysError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

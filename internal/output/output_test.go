package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brogergvhs/docscrape/internal/results"
	"github.com/brogergvhs/docscrape/internal/ui"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *results.Table {
	t.Helper()
	tbl := results.New("Documentation link", "Version", "Status")
	require.NoError(t, tbl.Append("https://docs.python.org/3.10/", "3.10", "stable"))
	require.NoError(t, tbl.Append("https://docs.python.org/3/", "3.x", ""))
	return tbl
}

func TestControlDefault(t *testing.T) {
	var out bytes.Buffer
	path, err := Control(sample(t), Options{Out: &out})
	require.NoError(t, err)
	assert.Empty(t, path)

	want := "Documentation link Version Status\n" +
		"https://docs.python.org/3.10/ 3.10 stable\n" +
		"https://docs.python.org/3/ 3.x \n"
	assert.Equal(t, want, out.String())
}

func TestControlPretty(t *testing.T) {
	var out bytes.Buffer
	_, err := Control(sample(t), Options{Format: FormatPretty, Out: &out})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "╭")
	assert.Contains(t, s, "Documentation link")
	assert.Contains(t, s, "https://docs.python.org/3.10/")
	assert.Contains(t, s, "stable")
}

func TestControlFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	var logs bytes.Buffer
	log, err := ui.NewLogger(ui.LogOptions{Console: &logs})
	require.NoError(t, err)

	path, err := Control(sample(t), Options{
		Format:     FormatFile,
		Mode:       "latest-versions",
		ResultsDir: dir,
		Log:        log,
		Now:        func() time.Time { return now },
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "latest-versions_2024-03-09_14-05-07.csv"), path)
	assert.Contains(t, logs.String(), "results file saved: "+path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	if diff := cmp.Diff(sample(t).Records(), got); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestControlSkipsEmptyTable(t *testing.T) {
	var out bytes.Buffer
	_, err := Control(nil, Options{Out: &out})
	require.NoError(t, err)
	assert.Zero(t, out.Len())
}

func TestControlUnknownFormat(t *testing.T) {
	_, err := Control(sample(t), Options{Format: "xml", Out: &bytes.Buffer{}})
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(""))
	assert.NoError(t, Validate(FormatPretty))
	assert.NoError(t, Validate(FormatFile))
	assert.Error(t, Validate("json"))
}

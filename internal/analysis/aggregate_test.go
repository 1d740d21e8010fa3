package analysis

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/resultkit-cli/internal/roster"
)

func writeResult(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAggregatorExcludeFiltersRows(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "run.csv")
	writeResult(t, p, "0,10\n1,20\n2,30\n")

	r := &roster.Roster{Labels: []string{"a", "b", "c"}}
	retained, err := r.Select(nil, []string{"b"})
	require.NoError(t, err)

	settings, err := NewSettings(true, false, 1.0, "")
	require.NoError(t, err)
	var out, diag bytes.Buffer
	require.NoError(t, NewAggregator(settings, retained, nil, &out, &diag).Run([]string{p}))

	// rows 0 and 2 remain: values 10 and 30
	assert.Equal(t, CSVHeader+"\n"+p+",2,20.0,20.0,10.0,10,30\n", out.String())
	assert.Empty(t, diag.String())
}

func TestAggregatorNoDataAndHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.MkdirAll(empty, 0o755))
	full := filepath.Join(dir, "full")
	writeResult(t, filepath.Join(full, "results", "0.csv"), "0,1\n1,2\n2,3\n3,4\n4,5\n")

	settings, err := NewSettings(true, false, 1.0, "")
	require.NoError(t, err)
	var out bytes.Buffer
	agg := NewAggregator(settings, []int{0, 1, 2, 3, 4}, nil, &out, &bytes.Buffer{})
	require.NoError(t, agg.Run([]string{empty, full}))

	want := CSVHeader + "\n" +
		empty + ",0\n" +
		full + ",5,3.0,3.0,1.41421356237,1,5\n"
	assert.Equal(t, want, out.String())
}

func TestAggregatorQuantileDiagnostics(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "run.csv")
	content := ""
	for i := 0; i < 10; i++ {
		content += string(rune('0'+i)) + "," + string(rune('0'+i)) + "\n"
	}
	writeResult(t, p, content)

	settings, err := NewSettings(false, false, 0.6, "")
	require.NoError(t, err)
	var out, diag bytes.Buffer
	retained := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	require.NoError(t, NewAggregator(settings, retained, nil, &out, &diag).Run([]string{p}))

	assert.Equal(t, "Removing bottom and top 2 episodes for quantile 0.6\n", diag.String())
	assert.Contains(t, out.String(), "Num episodes =  6\n")
	assert.Contains(t, out.String(), "min,max= 2 7\n")
}

func TestAggregatorMatchAcrossInputs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	writeResult(t, a, "0,50\n1,10\n2,30\n")
	writeResult(t, b, "0,7\n1,9\n")

	settings, err := NewSettings(true, true, 1.0, "")
	require.NoError(t, err)
	var out, diag bytes.Buffer
	require.NoError(t, NewAggregator(settings, []int{0, 1, 2}, nil, &out, &diag).Run([]string{a, b}))

	assert.Contains(t, diag.String(), "MIGHT BE WRONG")
	want := CSVHeader + "\n" +
		a + ",2,20.0,20.0,10.0,10,30\n" +
		b + ",2,8.0,8.0,1.0,7,9\n"
	assert.Equal(t, want, out.String())
}

func TestAggregatorConfigLabel(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run7")
	writeResult(t, filepath.Join(dir, "config.json"), `{"agent":{"name":"uct"}}`)
	writeResult(t, filepath.Join(dir, "results", "0.csv"), "0,4\n")

	settings, err := NewSettings(true, false, 1.0, "agent.name")
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, NewAggregator(settings, []int{0}, nil, &out, &bytes.Buffer{}).Run([]string{dir}))
	assert.Equal(t, CSVHeader+"\nuct,1,4.0,4.0,0.0,4,4\n", out.String())
}

func TestNewSettingsRejectsMatchWithQuantile(t *testing.T) {
	_, err := NewSettings(false, true, 0.8, "")
	assert.True(t, errors.Is(err, ErrMatchWithQuantile))

	_, err = NewSettings(false, true, 0, "")
	assert.True(t, errors.Is(err, ErrMatchWithQuantile), "non-positive quantiles are active: %v", err)

	_, err = NewSettings(false, false, 0, "")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrMatchWithQuantile))
}

func TestNewSettingsQuantileAboveOneDisablesTrimming(t *testing.T) {
	s, err := NewSettings(true, false, 1.5, "")
	require.NoError(t, err)
	assert.Equal(t, NoReduction{}, s.Reduction)

	s, err = NewSettings(true, true, 1.5, "")
	require.NoError(t, err)
	assert.Equal(t, MatchEpisodes{}, s.Reduction)
}

func TestAggregatorMissingInputFails(t *testing.T) {
	settings, err := NewSettings(false, false, 1.0, "")
	require.NoError(t, err)
	err = NewAggregator(settings, nil, nil, &bytes.Buffer{}, &bytes.Buffer{}).
		Run([]string{filepath.Join(t.TempDir(), "nope.csv")})
	assert.Error(t, err)
}

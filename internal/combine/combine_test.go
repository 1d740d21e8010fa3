package combine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSource(t *testing.T, root, name string, shards map[int]string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "results"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"agent":"`+name+`"}`), 0o644))
	for i, body := range shards {
		p := filepath.Join(dir, "results", fmt.Sprintf("%d.csv", i))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return dir
}

func TestRunConcatenatesShardsInOrder(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "out")
	shards := map[int]string{}
	want := ""
	for i := 0; i < 12; i++ {
		body := fmt.Sprintf("%d,%d\n", i, i*10)
		if i == 5 {
			body = "no trailing newline"
		}
		shards[i] = body
		want += body
	}
	src := makeSource(t, root, "runA", shards)

	res, err := New(target, nil).Run(src)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Shards)
	assert.False(t, res.Truncated)
	assert.True(t, res.ConfigValid)

	got, err := os.ReadFile(filepath.Join(target, "runA.csv"))
	require.NoError(t, err)
	assert.Equal(t, want, string(got))

	cfg, err := os.ReadFile(filepath.Join(target, "configs", "runA.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"agent":"runA"}`, string(cfg))
}

func TestRunStopsAtFirstGap(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "out")
	src := makeSource(t, root, "gappy", map[int]string{0: "a\n", 1: "b\n", 3: "d\n"})

	res, err := New(target, nil).Run(src)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Shards)
	assert.True(t, res.Truncated)

	got, err := os.ReadFile(filepath.Join(target, "gappy.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(got))
}

func TestRunTwiceReportsTargetExists(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "out")
	src := makeSource(t, root, "runB", map[int]string{0: "0,1\n"})
	c := New(target, nil)

	_, err := c.Run(src)
	require.NoError(t, err)

	// change the source so a rewrite would be visible
	require.NoError(t, os.WriteFile(filepath.Join(src, "results", "0.csv"), []byte("changed\n"), 0o644))
	_, err = c.Run(src)
	var te *TargetExistsError
	require.True(t, errors.As(err, &te), "got %v", err)
	assert.Equal(t, "csv", te.Kind)

	got, err := os.ReadFile(filepath.Join(target, "runB.csv"))
	require.NoError(t, err)
	assert.Equal(t, "0,1\n", string(got))
}

func TestRunExistingConfigTargetWritesNothing(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "out")
	src := makeSource(t, root, "runC", map[int]string{0: "0,1\n"})
	require.NoError(t, os.MkdirAll(filepath.Join(target, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "configs", "runC.json"), []byte("{}"), 0o644))

	_, err := New(target, nil).Run(src)
	var te *TargetExistsError
	require.True(t, errors.As(err, &te), "got %v", err)
	assert.Equal(t, "json", te.Kind)
	_, statErr := os.Stat(filepath.Join(target, "runC.csv"))
	assert.True(t, os.IsNotExist(statErr), "combined csv must not be written")
}

func TestRunMissingSourceConfig(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "bare")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "results"), 0o755))

	_, err := New(filepath.Join(root, "out"), nil).Run(src)
	var me *SourceConfigMissingError
	require.True(t, errors.As(err, &me), "got %v", err)
	assert.Equal(t, filepath.Join(src, "config.json"), me.Path)
}

func TestTargetNameTrailingSeparator(t *testing.T) {
	assert.Equal(t, "runA", TargetName("experiments/runA"))
	assert.Equal(t, "runA", TargetName("experiments/runA"+string(filepath.Separator)))
}

func TestShardsWithoutResultsDir(t *testing.T) {
	paths, truncated := Shards(t.TempDir())
	assert.Empty(t, paths)
	assert.False(t, truncated)
}

func TestRunCopiesInvalidConfigVerbatim(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "out")
	src := makeSource(t, root, "broken", map[int]string{0: "0,1\n"})
	require.NoError(t, os.WriteFile(filepath.Join(src, "config.json"), []byte("{not json"), 0o644))

	res, err := New(target, nil).Run(src)
	require.NoError(t, err)
	assert.False(t, res.ConfigValid)

	cfg, err := os.ReadFile(filepath.Join(target, "configs", "broken.json"))
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(cfg))
}

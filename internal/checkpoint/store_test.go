package checkpoint

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"repopulse/internal/models"
	"repopulse/internal/structures"
	"repopulse/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, compressor CompressorInterface) (*Store, string, *testutil.MockLogger, *testutil.MockMetrics) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "checkpoint.json")
	conf := &structures.Config{Persistence: structures.Persistence{FilePath: path}}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	return NewStore(conf, compressor, logger, metrics), path, logger, metrics
}

func sampleHistory(link string) models.RepositoryHealthHistory {
	return models.RepositoryHealthHistory{
		GithubLink: link,
		MonthlyMetrics: []models.ScoredMonth{
			{Month: "2403", Score: 0.04, Label: models.LabelMaintaining},
			{Month: "2402", Score: -0.5, Label: models.LabelCrisis},
		},
		FinalStatus: models.StatusActive,
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s, _, logger, _ := newTestStore(t, NoCompression{})

	got := s.Load()
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 0, logger.Count("warn"))
}

func TestStore_PersistAndLoadRoundtrip(t *testing.T) {
	s, path, _, metrics := newTestStore(t, NoCompression{})
	s.Load()
	s.Append(sampleHistory("https://github.com/apache/kafka"))
	s.Append(models.RepositoryHealthHistory{GithubLink: "https://github.com/apache/old", FinalStatus: models.StatusArchived})
	require.NoError(t, s.Persist())

	assert.Equal(t, 1, metrics.Persists)
	assert.Equal(t, 2, metrics.HistoriesTotal)

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	reloaded, _, _, _ := newTestStore(t, NoCompression{})
	reloaded.path = path
	got := reloaded.Load()
	require.Len(t, got, 2)
	assert.Equal(t, sampleHistory("https://github.com/apache/kafka"), got[0])
	assert.Equal(t, models.StatusArchived, got[1].FinalStatus)
	assert.True(t, reloaded.Has("https://github.com/apache/old"))
	assert.False(t, reloaded.Has("https://github.com/apache/spark"))
}

func TestStore_PersistWritesDocumentedFormat(t *testing.T) {
	s, path, _, _ := newTestStore(t, NoCompression{})
	s.Append(sampleHistory("https://github.com/apache/kafka"))
	require.NoError(t, s.Persist())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc, 1)
	assert.Equal(t, "https://github.com/apache/kafka", doc[0]["Github_link"])
	assert.Equal(t, 1.0, doc[0]["final_status"])
	months := doc[0]["monthly_metrics"].([]interface{})
	first := months[0].(map[string]interface{})
	assert.Equal(t, "2403", first["Month"])
	assert.Equal(t, 0.04, first["Score"])
	assert.Equal(t, 4.0, first["Label"])
}

func TestStore_PersistEmptySetIsArray(t *testing.T) {
	s, path, _, _ := newTestStore(t, NoCompression{})
	s.Load()
	require.NoError(t, s.Persist())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestStore_LoadInvalidSyntax(t *testing.T) {
	s, path, logger, _ := newTestStore(t, NoCompression{})
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0644))

	got := s.Load()
	assert.Empty(t, got)
	assert.Equal(t, 2, logger.Count("warn"))

	backup, err := os.ReadFile(path + corruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, "not json at all", string(backup))
}

func TestStore_LoadRejectsSchemaViolation(t *testing.T) {
	cases := map[string]string{
		"not an array":      `{"Github_link":"x"}`,
		"missing link":      `[{"monthly_metrics":[],"final_status":1.0}]`,
		"bad month":         `[{"Github_link":"x","monthly_metrics":[{"Month":"2024-03","Score":0,"Label":3}],"final_status":1.0}]`,
		"unknown label":     `[{"Github_link":"x","monthly_metrics":[{"Month":"2403","Score":0,"Label":9}],"final_status":1.0}]`,
		"bad final status":  `[{"Github_link":"x","monthly_metrics":[],"final_status":0.5}]`,
		"string score":      `[{"Github_link":"x","monthly_metrics":[{"Month":"2403","Score":"high","Label":3}],"final_status":1.0}]`,
		"empty link string": `[{"Github_link":"","monthly_metrics":[],"final_status":1.0}]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			s, path, _, _ := newTestStore(t, NoCompression{})
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
			require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

			assert.Empty(t, s.Load())
			assert.FileExists(t, path+corruptSuffix)
		})
	}
}

func TestStore_ZstdRoundtrip(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	s, path, _, _ := newTestStore(t, comp)
	defer s.Close()

	s.Append(sampleHistory("https://github.com/apache/kafka"))
	require.NoError(t, s.Persist())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, json.Valid(raw), "file must be compressed")

	got := s.Load()
	require.Len(t, got, 1)
	assert.Equal(t, sampleHistory("https://github.com/apache/kafka"), got[0])
}

func TestStore_DecompressFailureStartsEmpty(t *testing.T) {
	comp := &testutil.MockCompressor{
		DecompressFn: func([]byte) ([]byte, error) { return nil, errors.New("decompress failed") },
	}
	s, path, _, _ := newTestStore(t, comp)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	assert.Empty(t, s.Load())
	assert.FileExists(t, path+corruptSuffix)
}

func TestStore_CompressErrorKeepsPreviousFile(t *testing.T) {
	s, path, _, _ := newTestStore(t, NoCompression{})
	s.Append(sampleHistory("https://github.com/apache/kafka"))
	require.NoError(t, s.Persist())
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	s.compressor = &testutil.MockCompressor{
		CompressFn: func([]byte) ([]byte, error) { return nil, errors.New("compress failed") },
	}
	s.Append(sampleHistory("https://github.com/apache/spark"))
	err = s.Persist()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compress failed")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_FindAndHistoriesCopy(t *testing.T) {
	s, _, _, _ := newTestStore(t, NoCompression{})
	s.Append(sampleHistory("https://github.com/apache/kafka"))

	h, ok := s.Find("https://github.com/apache/kafka")
	require.True(t, ok)
	assert.Len(t, h.MonthlyMetrics, 2)

	_, ok = s.Find("https://github.com/apache/spark")
	assert.False(t, ok)

	list := s.Histories()
	list[0].GithubLink = "changed"
	assert.True(t, s.Has("https://github.com/apache/kafka"))
	assert.Equal(t, "https://github.com/apache/kafka", s.Histories()[0].GithubLink)
}

func TestNewCompressor(t *testing.T) {
	conf := &structures.Config{}
	c, err := NewCompressor(conf)
	require.NoError(t, err)
	assert.IsType(t, NoCompression{}, c)

	conf.Persistence.Compression = CompressionZstd
	c, err = NewCompressor(conf)
	require.NoError(t, err)
	assert.IsType(t, &ZstdCompression{}, c)
	c.Close()

	conf.Persistence.Compression = "lz4"
	_, err = NewCompressor(conf)
	assert.Error(t, err)
}

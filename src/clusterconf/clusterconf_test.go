package clusterconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSiteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hbase-site.yaml")
	site := "fs.defaultFS: hdfs://namenode:8020\nhbase.rootdir: hdfs://namenode:8020/hbase\n"
	require.NoError(t, os.WriteFile(path, []byte(site), 0o644))

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "hdfs://namenode:8020", conf.Get(KeyDefaultFS))
	assert.Equal(t, "hdfs://namenode:8020/hbase", conf.Get(KeyHBaseRootDir))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadMissingSiteFileIsNotAnError(t *testing.T) {
	chdir(t, t.TempDir())

	conf, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, conf.Get(KeyDefaultFS))
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HBASE_FS_DEFAULTFS", "hdfs://other:8020")

	conf, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "hdfs://other:8020", conf.Get(KeyDefaultFS))
}

func TestDefaultFSFallsBackToLegacyKey(t *testing.T) {
	conf := New()
	require.NoError(t, conf.Set(KeyDefaultFSLegacy, "hdfs://legacy:9000"))

	fs, err := conf.DefaultFS()
	require.NoError(t, err)
	assert.Equal(t, "hdfs://legacy:9000", fs)
}

func TestDefaultFSPrefersPrimaryKey(t *testing.T) {
	conf := New()
	require.NoError(t, conf.Set(KeyDefaultFS, "hdfs://primary:8020"))
	require.NoError(t, conf.Set(KeyDefaultFSLegacy, "hdfs://legacy:9000"))

	fs, err := conf.DefaultFS()
	require.NoError(t, err)
	assert.Equal(t, "hdfs://primary:8020", fs)
}

func TestDefaultFSMissing(t *testing.T) {
	_, err := New().DefaultFS()

	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

func TestCloneIsolation(t *testing.T) {
	base := New()
	require.NoError(t, base.Set(KeyDefaultFS, "hdfs://namenode:8020"))

	clone := base.Clone()
	require.NoError(t, clone.Set(KeyDefaultFS, "s3://AK:SK@bucket"))
	require.NoError(t, clone.Set(KeyS3AccessSecret, "SK"))

	assert.Equal(t, "hdfs://namenode:8020", base.Get(KeyDefaultFS))
	assert.Empty(t, base.Get(KeyS3AccessSecret))
	assert.Equal(t, "s3://AK:SK@bucket", clone.Get(KeyDefaultFS))
}

func TestKeysSorted(t *testing.T) {
	conf := New()
	require.NoError(t, conf.Set("b.key", "2"))
	require.NoError(t, conf.Set("a.key", "1"))

	assert.Equal(t, []string{"a.key", "b.key"}, conf.Keys())
}

// Package clusterconf holds the process-wide cluster configuration used to
// address the HBase cluster and its filesystems. Values come from an optional
// YAML site file plus environment overrides; components that need a modified
// view (the importer redirects the default filesystem for one copy job) must
// work on a Clone, never on the shared instance.
package clusterconf

import (
	"fmt"
	"os"
	"sort"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Well-known configuration keys. These are flat, dot-separated names in the
// Hadoop style; the koanf instance uses "/" as its delimiter so the dots are
// never interpreted as nesting.
const (
	KeyDefaultFS       = "fs.defaultFS"
	KeyDefaultFSLegacy = "fs.default.name"
	KeyS3AccessKey     = "fs.s3.awsAccessKeyId"
	KeyS3AccessSecret  = "fs.s3.awsSecretAccessKey"
	KeyHBaseRootDir    = "hbase.rootdir"
	KeyHBaseTmpDir     = "hbase.tmp.dir"
)

// ConfigPathEnvVar overrides the site file search path.
const ConfigPathEnvVar = "SNAPSHOT_UTIL_CONF"

// DefaultConfigPaths lists where the site file is searched, in order. The
// first file found wins.
var DefaultConfigPaths = []string{
	"hbase-site.yaml",
	"/etc/hbase/conf/hbase-site.yaml",
}

// envOverrides maps environment variables onto configuration keys. Only the
// addressing keys are overridable from the environment; everything else comes
// from the site file.
var envOverrides = map[string]string{
	"HBASE_FS_DEFAULTFS": KeyDefaultFS,
	"HBASE_ROOTDIR":      KeyHBaseRootDir,
	"HBASE_TMP_DIR":      KeyHBaseTmpDir,
}

// ConfigurationError reports that required cluster addressing information
// could not be determined.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "cluster configuration: " + e.Reason
}

// Config wraps the loaded key/value view of the cluster configuration.
type Config struct {
	k *koanf.Koanf
}

// New returns an empty configuration. Mostly useful in tests.
func New() *Config {
	return &Config{k: koanf.New("/")}
}

// Load reads the site file (explicit path, else the search order above) and
// applies environment overrides. A missing site file is not an error; the
// cluster tooling this process shells out to carries its own defaults.
func Load(path string) (*Config, error) {
	k := koanf.New("/")

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load site file %s: %w", path, err)
		}
	}

	for envVar, key := range envOverrides {
		envVar, key := envVar, key
		p := env.Provider(envVar, "/", func(s string) string {
			if s == envVar {
				return key
			}
			return ""
		})
		if err := k.Load(p, nil); err != nil {
			return nil, fmt.Errorf("load environment override %s: %w", envVar, err)
		}
	}

	return &Config{k: k}, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Get returns the string value for key, or "" when unset.
func (c *Config) Get(key string) string {
	return c.k.String(key)
}

// Set assigns a value. Callers redirecting addresses must do so on a Clone.
func (c *Config) Set(key, value string) error {
	return c.k.Set(key, value)
}

// Clone returns a deep copy. Mutations of the clone never reach the receiver.
func (c *Config) Clone() *Config {
	return &Config{k: c.k.Copy()}
}

// DefaultFS resolves the cluster's default filesystem address, trying the
// primary key first and falling back to the legacy one.
func (c *Config) DefaultFS() (string, error) {
	if v := c.k.String(KeyDefaultFS); v != "" {
		return v, nil
	}
	if v := c.k.String(KeyDefaultFSLegacy); v != "" {
		return v, nil
	}
	return "", &ConfigurationError{
		Reason: fmt.Sprintf("could not determine current %s or %s", KeyDefaultFS, KeyDefaultFSLegacy),
	}
}

// Keys returns every set key, sorted.
func (c *Config) Keys() []string {
	all := c.k.All()
	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// All returns the configuration as a flat string map, sorted iteration via
// Keys. Non-string values are rendered with fmt.
func (c *Config) All() map[string]string {
	all := c.k.All()
	out := make(map[string]string, len(all))
	for key, val := range all {
		out[key] = fmt.Sprintf("%v", val)
	}
	return out
}

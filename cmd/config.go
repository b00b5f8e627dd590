package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const configName = ".remold.yml"

// fileConfig is the optional per-project configuration. Command line
// flags that were set explicitly win over it.
type fileConfig struct {
	Rules    []string `yaml:"rules"`
	Unparser string   `yaml:"unparser"`
	Workers  int      `yaml:"workers"`
	Apply    bool     `yaml:"apply"`
	Debug    bool     `yaml:"-"`
	NoColor  bool     `yaml:"-"`
}

func loadConfig(dir string) (*fileConfig, error) {
	cfg := &fileConfig{Workers: 4}
	data, err := os.ReadFile(filepath.Join(dir, configName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configName, err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

func (c *fileConfig) merge(cmd *cli.Command) {
	if rules := cmd.StringSlice("rule"); len(rules) > 0 {
		c.Rules = rules
	}
	if cmd.IsSet("unparser") {
		c.Unparser = cmd.String("unparser")
	}
	if cmd.IsSet("workers") {
		c.Workers = int(cmd.Int("workers"))
	}
	if cmd.Bool("apply") {
		c.Apply = true
	}
	c.Debug = cmd.Bool("debug")
	c.NoColor = cmd.Bool("no-color")
}

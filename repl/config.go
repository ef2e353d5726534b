/*
File    : monkey/repl/config.go
Package : repl
*/

package repl

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional startup configuration a `.go-mix.yaml` file in the
// working directory may supply. Every field has a sane zero value so a
// missing or partial file still produces a usable Repl.
type Config struct {
	Prompt     string `yaml:"prompt"`
	ShowBanner *bool  `yaml:"show_banner"`
	Mode       string `yaml:"mode"`
}

// LoadConfig reads path and parses it as YAML. A missing file is not an
// error — it returns a zero-value Config so the caller's defaults apply.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

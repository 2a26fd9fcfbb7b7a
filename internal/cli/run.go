package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Script is a named key sequence stored as YAML:
//
//	name: chained division
//	keys: ["1", "0", "0", "+", "1", "0", "/", "1", "0", "="]
type Script struct {
	Name string   `yaml:"name"`
	Keys []string `yaml:"keys"`
}

// LoadScript reads and validates a YAML key script.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("parse script %s: %w", path, err)
	}
	if len(s.Keys) == 0 {
		return Script{}, fmt.Errorf("script %s has no keys", path)
	}
	return s, nil
}

func newRunCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "Replay a YAML key script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := LoadScript(args[0])
			if err != nil {
				return err
			}
			if script.Name != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", script.Name)
			}
			return pressKeys(cmd, opts, script.Keys)
		},
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAMLLoader is a kong.ConfigurationLoader for YAML files whose top-level
// keys are flag names, for example:
//
//	output: docs.txt
//	delay: 0.5
//	max-pages: 200
//
// Keys may use underscores in place of dashes. Flags given on the command
// line take precedence over the file.
func YAMLLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if v, ok := values[flag.Name]; ok {
			return v, nil
		}
		if v, ok := values[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
			return v, nil
		}
		return nil, nil
	}), nil
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xichen1997/stronger-llama/internal/config"
	"github.com/xichen1997/stronger-llama/internal/spec"
)

// resolveSpecPath returns the config path from --spec or by searching upward from cwd.
func resolveSpecPath(specFlag string) (string, error) {
	if strings.TrimSpace(specFlag) != "" {
		abs, err := filepath.Abs(specFlag)
		if err != nil {
			return "", fmt.Errorf("resolve spec path: %w", err)
		}
		return abs, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working dir: %w", err)
	}
	return config.FindConfigPath(cwd)
}

// loadedConfig is a validated config with the directory relative paths resolve against.
type loadedConfig struct {
	Config spec.Config
	Root   string
	Path   string
}

// loadConfig loads --spec or the nearest config. Without --spec a missing config
// falls back to the built-in defaults rooted at the working directory.
func loadConfig(specFlag string) (loadedConfig, error) {
	path, err := resolveSpecPath(specFlag)
	if err != nil {
		if strings.TrimSpace(specFlag) == "" && errors.Is(err, config.ErrConfigNotFound) {
			cwd, cwdErr := os.Getwd()
			if cwdErr != nil {
				return loadedConfig{}, fmt.Errorf("resolve working dir: %w", cwdErr)
			}
			return loadedConfig{Config: config.Default(), Root: cwd}, nil
		}
		return loadedConfig{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return loadedConfig{}, err
	}
	return loadedConfig{Config: cfg, Root: config.RepoRootFromConfigPath(path), Path: path}, nil
}

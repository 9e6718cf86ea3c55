package types

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/morispolanco/subjuntivo-buscador/logger"
	"gopkg.in/yaml.v3"
)

const (
	// strategies
	StrategyTagged  = "tagged"
	StrategyPattern = "pattern"
	StrategyRemote  = "remote"

	DefaultClauseWindow = 100
)

type ClauseWindow struct {
	Backward int `yaml:"backward" json:"backward"`
	Forward  int `yaml:"forward" json:"forward"`
}

type EngineConfiguration struct {
	Name                string       `yaml:"name" json:"name"`
	FilePath            string       `yaml:"-" json:"file_path,omitempty"`
	Strategy            string       `yaml:"strategy" json:"strategy"`
	DegradeOnModelError bool         `yaml:"degrade_on_model_error" json:"degrade_on_model_error"`
	ResourceDir         string       `yaml:"resource_dir" json:"resource_dir"`
	ClauseWindow        ClauseWindow `yaml:"clause_window" json:"clause_window"`
	ExtraTriggers       []string     `yaml:"extra_triggers" json:"extra_triggers"`
}

func DefaultEngineConfiguration() EngineConfiguration {
	return EngineConfiguration{
		Name:     "default",
		Strategy: StrategyTagged,
		ClauseWindow: ClauseWindow{
			Backward: DefaultClauseWindow,
			Forward:  DefaultClauseWindow,
		},
	}
}

func (cfg EngineConfiguration) Validate() error {
	switch cfg.Strategy {
	case StrategyTagged, StrategyPattern, StrategyRemote:
	default:
		return fmt.Errorf("wrong strategy %q", cfg.Strategy)
	}
	if cfg.ClauseWindow.Backward <= 0 || cfg.ClauseWindow.Forward <= 0 {
		return errors.New("clause window sizes must be positive")
	}
	return nil
}

// LoadEngineConfiguration reads a yaml file on top of the defaults. An empty path
// returns the defaults.
func LoadEngineConfiguration(filePath string) (EngineConfiguration, error) {
	cfg := DefaultEngineConfiguration()
	if filePath == "" {
		return cfg, nil
	}
	subjLogger := logger.NewLogger("LoadEngineConfiguration")

	buf, err := os.ReadFile(filePath)
	if err != nil {
		subjLogger.Err(err).Str("path", filePath).Msg("Failed to read engine configuration")
		return cfg, err
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		subjLogger.Err(err).Str("path", filePath).Msg("Failed to parse engine configuration")
		return cfg, err
	}
	cfg.FilePath = filePath
	cfg.Strategy = strings.ToLower(strings.TrimSpace(cfg.Strategy))
	if cfg.ClauseWindow.Backward == 0 {
		cfg.ClauseWindow.Backward = DefaultClauseWindow
	}
	if cfg.ClauseWindow.Forward == 0 {
		cfg.ClauseWindow.Forward = DefaultClauseWindow
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

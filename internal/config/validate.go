package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	return c.validateRender()
}

func (c *Config) validatePaths() error {
	if c.Paths.InputDir == "" {
		return errors.New("paths.input_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.InputDir == c.Paths.OutputDir {
		return errors.New("paths.output_dir must differ from paths.input_dir")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.ThresholdDB < 0 {
		return fmt.Errorf("analysis.threshold_db must be non-negative, got %g", c.Analysis.ThresholdDB)
	}
	if c.Analysis.Workers > 64 {
		return fmt.Errorf("analysis.workers must be at most 64, got %d", c.Analysis.Workers)
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.WidthInches > 100 || c.Render.HeightInches > 100 {
		return errors.New("render dimensions must be at most 100 inches")
	}
	if c.Render.DPI > 1200 {
		return fmt.Errorf("render.dpi must be at most 1200, got %d", c.Render.DPI)
	}
	return nil
}

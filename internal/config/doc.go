// Package config loads, normalizes, and validates the dataset builder
// configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every
// knob the CLI needs: the measurement input directory, the dataset
// output root, the analysis threshold, render geometry, and logging.
//
// Always obtain settings through this package so downstream code
// receives sanitized paths, canonical log formats, and clear validation
// errors.
package config

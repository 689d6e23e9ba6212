// Package signature implements the numerical core of the dataset builder:
// curve normalization, fixed-band aggregation, defined-aware region
// combination, and the sound-signature classification rule.
//
// The pipeline is a pure function from a measured curve and an analysis
// configuration to a label plus its derived band and region statistics.
// Missing spectrum coverage is modeled with an explicit optional Mean so
// partial measurements degrade gracefully instead of zeroing out a region.
package signature

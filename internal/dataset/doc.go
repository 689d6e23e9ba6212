// Package dataset orchestrates a full build: it walks the input
// directory, runs every measurement through the analysis pipeline, and
// materializes the label-partitioned output tree (rendered plots plus
// archived source files) alongside the results index.
//
// A build holds an exclusive file lock on the output root for its whole
// duration, so two concurrent builds can never interleave writes into
// the same dataset.
package dataset

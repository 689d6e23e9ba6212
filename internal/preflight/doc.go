// Package preflight provides readiness checks for the filesystem paths
// a dataset build depends on.
//
// The build command runs RunAll before touching any curve file. If the
// input directory is unreadable or the output root cannot be written,
// the build aborts up front instead of failing halfway through a batch.
package preflight

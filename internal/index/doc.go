// Package index persists dataset build results in a SQLite database
// stored alongside the generated dataset.
//
// Each processed curve gets one row: the source file, its assigned
// label, and the derived region means. Region means are NULLable so an
// undefined region survives the round trip as "no data" rather than
// zero. The stats command reads this index to summarize label
// distribution across builds.
package index

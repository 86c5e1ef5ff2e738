/*
Command vgraph-align aligns a stream of reads (one per line) against a named
subgraph of a GDEF document's base graph, dispatching fixed-size chunks of
reads to a worker pool.

Usage:

	vgraph-align -gdef calls.gdef -label eur -reads reads.txt -chunk-size 64 -workers 4
*/
package main

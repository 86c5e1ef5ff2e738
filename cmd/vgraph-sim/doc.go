/*
Command vgraph-sim draws synthetic reads from a named subgraph of a GDEF
document's base graph, according to a length/mutation/indel/variant-content
profile, and writes one tab-separated record per read.

Usage:

	vgraph-sim -gdef calls.gdef -label eur/female -n 1000 -len 150 -mut 0.01
*/
package main

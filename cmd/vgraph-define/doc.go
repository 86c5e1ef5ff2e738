/*
Command vgraph-define builds a GDEF population-filter-tree document from a
reference, a variant call-set, a region, a node-length budget, and a set of
subgraph definitions.

Usage:

	vgraph-define -ref ref.fa -vcf calls.vcf -region chr1:0-1000 \
		-defs "eur=100;eur/female=50%" -out calls.gdef
*/
package main

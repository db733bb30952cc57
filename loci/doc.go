// Package loci implements selections of structure elements and their algebra.
//
// A Loci maps units of one Structure to ordered sets of touched positions
// into each unit's Elements. Loci values are immutable; every operation
// returns a new value and never errors. Results are emitted in structure
// unit order with empty entries dropped, so equal selections built through
// different operations compare equal under AreEqual.
package loci

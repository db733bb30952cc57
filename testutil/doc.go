// Package testutil provides testing utilities for molsel.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random point clouds, building
// synthetic structures, and computing exact spatial query answers.
//
// # Random Positions
//
//	rng := testutil.NewRNG(seed)
//	pos := rng.UniformPositions(1000, 50)     // cube of edge 50
//	pos = rng.ClusteredPositions(1000, 8, 2)  // 8 gaussian blobs
//
// # Brute Force (Ground Truth)
//
//	want := testutil.BruteForceWithin(pos, q, r)
//	want = testutil.BruteForceNearest(pos, q, k)
package testutil

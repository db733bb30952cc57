// Package bitmap wraps 32-bit Roaring bitmaps as index sets for selection
// bookkeeping: touched chains, per-model element unions and deduplicated
// source indices.
package bitmap

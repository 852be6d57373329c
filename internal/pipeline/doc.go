// Package pipeline shards the candidate space of an Enumerator across worker
// goroutines, scores each shard into its own Posterior, then merges the
// partials in shard order and normalises.
//
// Merge order depends only on the shard layout, so a given thread count always
// produces bit-identical output.
package pipeline

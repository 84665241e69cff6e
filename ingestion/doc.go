// Package ingestion provides pipeline orchestration for importing event feeds.
//
// The Pipeline type manages the import workflow for partner feeds, including:
//   - Decoding the JSON feed format
//   - Validating events before they reach the catalog
//   - Upserting events in concurrent batches keyed by their stable EventKey
//
// Upserts are performed concurrently using a worker pool to maximize
// throughput. A failed batch is logged and counted but does not fail the
// import of the remaining batches.
package ingestion

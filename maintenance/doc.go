// Package maintenance provides batch upkeep jobs for the event catalog.
//
// The Pruner removes events whose date has passed, keeping the catalog and
// its date index from growing without bound. Jobs run in batches with
// progress tracking and retry logic with exponential backoff.
package maintenance

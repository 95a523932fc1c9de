// Package ingestion populates corpus storage from loaded records.
//
// The Pipeline embeds records in concurrent batches on a worker pool and
// persists the result, so a stored corpus carries its vectors and can be
// served without re-embedding at startup. Unlike query-time retrieval,
// ingestion treats embedding failures as fatal: an index built without
// vectors would silently serve degraded results forever.
package ingestion

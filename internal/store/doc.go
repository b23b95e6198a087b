// Package store persists anomaly-free spectra and run exports.
//
// Persistence is content-addressed: a spectrum is serialized to a canonical
// JSON form (field-sorted keys, hypercharges as exact "n/d" strings), hashed,
// and written under a filename derived from the hash. Identical spectra
// always map to the same filename regardless of which search stage discovered
// them, which deduplicates rediscoveries across stages for free.
//
// Design decision: The scanner depends only on the Sink interface, never on
// the filesystem directly. FileStore is the production implementation;
// MemoryStore backs tests and dry runs without touching disk.
package store

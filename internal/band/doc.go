// Package band is a typed client for the BAND Open API resource endpoints.
//
// Every response arrives in the same {result_code, result_data} envelope;
// ParseResponse handles transport-level failure and content-type checks,
// and the client rejects any envelope whose result_code is not 1 before a
// caller sees result_data. Listing endpoints return an opaque Paging cursor
// that is replayed verbatim to fetch the next page.
//
// Domain objects (Band, Post, Comment, Photo, Album, Profile, Author) are
// immutable values built from fully-parsed envelopes. Posts and comments
// keep a non-owning reference to their band, used only for the capability
// checks that gate mutating operations: writing requires "posting",
// commenting requires "commenting", and deletion requires authorship or
// "contents_deletion". The capability set is fetched once per Band instance
// and memoized.
package band

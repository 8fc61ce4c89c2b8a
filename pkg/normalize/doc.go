// Package normalize reshapes upstream Polymarket payloads into the response
// shape the frontend expects.
//
// By default normalization is structural only:
//
//   - search returns the profiles array of the gamma response
//   - markets returns the events array
//   - trending returns the payload when it is an array, else its events array
//   - every other endpoint passes through unchanged
//
// A missing or non-array member degrades to an empty array. Normalization
// never fails.
//
// With Options.CanonicalTraders or Options.CanonicalMarkets set, collections
// are further re-encoded as Trader or Event records. Field values are read
// through alias tables (see TraderAliases) so that the several upstream
// spellings of the same quantity ("vol", "volume_amount", "profile_volume")
// resolve to one field. Numbers are carried as shopspring decimals and encoded
// as JSON strings to avoid float rounding. If a payload cannot be decoded into
// records, the structural result is returned instead.
//
// ParseOrderBook decodes clob order books for command line display.
package normalize

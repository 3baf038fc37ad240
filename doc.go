// Package track provides editable 16-bit audio tracks whose samples can be
// shared between tracks instead of copied.
//
// A Track is an ordered list of positions. Each position references one
// sample value. Positions created by Write own a freshly allocated value
// (Origin); positions created by Insert reference a value that already
// exists in another track, or elsewhere in the same one (Shared). Every
// value carries the number of positions referencing it, so edits through
// any sharer are visible to all of them:
//
//   - Write overwrites amplitudes in place and appends Origin positions past
//     the end of the track.
//   - Insert splices Shared positions into a track without copying data.
//   - DeleteRange refuses, without mutating anything, to remove an Origin
//     position that is still shared.
//
// Identify scans a track for near-duplicate occurrences of a short clip
// using zero-lag normalized cross-correlation.
//
// Tracks are not safe for concurrent use. Callers that need it must
// serialize every operation touching tracks that may share values.
package track

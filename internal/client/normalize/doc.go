// Package normalize turns upstream response envelopes of inconsistent shape
// into canonical results.
//
// The upstream may return a payload bare, wrapped under "data", or nested
// under a named field next to a "total" count:
//
//	[{...}, {...}]
//	{"success": true, "data": [{...}]}
//	{"success": true, "data": {"users": [{...}], "total": 3}}
//
// Every function here is pure and total: any decoded JSON value yields a
// result. A value with no recognizable shape normalizes to an empty result
// whose Matched method reports false; callers log that and carry on.
//
// Unwrapping is an ordered list of strategies tried at each layer (see
// listStrategies and entityStrategies). The "data" strategy recurses one
// layer down, up to MaxLayers.
package normalize

// Package services pairs the upstream client with the response normalizer.
//
// Each service method performs one upstream call and returns canonical
// values: normalize.Page for lists, models.Entity for single resources and
// plain maps for statistics. Unrecognized envelopes are not errors; they
// yield empty results and a warning in the log.
package services

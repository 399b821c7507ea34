// Package surfacing implements the daily selection core: pure calendar and
// holiday arithmetic, relevance scoring of gratitude entries against the
// current season and upcoming holidays, and the deterministic pick of the
// entry to surface for a user on a given date.
//
// Everything in this package is a pure function of its inputs and the static
// configuration in Params. Persistence, idempotence per (user, date) and the
// insert race are handled by the service layer on top.
package surfacing

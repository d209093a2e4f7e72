// Package report models the AWEKAS current.php response and projects it onto
// the connector's flat state names.
//
// The main components are:
//
//   - [Report]: typed response document, decoded once by [Decode]
//   - [Field]: one catalog entry (state name, kind, unit and extractor)
//   - [Mapper]: writes every catalog field of a clean report to a [Sink]
//   - [CompassLabel]: degree to localized compass label translation
//
// Every leaf of the document is explicitly nullable ([Number], [Flag],
// [Text]); absent sections are nil pointers and surface as
// [ErrMissingSection] during mapping.
package report

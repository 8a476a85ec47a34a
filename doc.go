// Package clientbook turns a loosely shaped table of client portfolios into a
// rebalancing report.
//
// The pipeline has five stages, each usable on its own:
//   - Normalization: [Normalize] maps an input table with arbitrary column
//     names onto the canonical [Record] schema, using an ordered list of
//     [Aliases]. It is all or nothing: if a canonical field cannot be
//     resolved, it fails with a [*SchemaError].
//   - Status derivation: [Derive] tags every record with its rebalancing
//     [Status] relative to a reference date and an alert window.
//   - Filtering: [Filter] selects rows by client name, advisor and status.
//   - Aggregation: [Aggregate] computes the [KPIs] of any set of rows.
//   - Formatting: package format renders values for display.
//
// [NewReport] runs one full cycle over an explicit [State]. Nothing is kept
// between cycles: every input or filter change builds a new State.
//
// Reading files, falling back to the [Example] dataset and rendering the
// report are the job of the source, app and renderer packages.
package clientbook

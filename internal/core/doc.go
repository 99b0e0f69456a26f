// Package core holds the user management domain: the User model, the
// record access contract ([Store]), the [Service] that validates requests
// before touching the store, and the spreadsheet import pipeline.
//
// # Import
//
// [Service.ImportUsers] reads the first worksheet of an uploaded workbook,
// maps the "Name", "Email" and "Created At" columns, and records an explicit
// [RowResult] for every data row. Rows missing a name or email are skipped.
// Parsing finishes before [Store.InTx] opens the transaction, and all
// inserts share that one transaction: either every surviving row is
// committed or none is.
//
// # Errors
//
// Failures are typed so transports can map them to status codes:
//
//   - [*ValidationError], [ErrMissingFile], [ErrInvalidID]: the request is wrong
//   - [ErrNotFound]: update or delete matched no row
//   - [*DecodeError]: the upload is not a readable spreadsheet
//   - [*StoreError]: the database failed; for imports, everything rolled back
//
// [MapError] turns any of these into a [UserMessage] with a support code.
package core

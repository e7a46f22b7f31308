// Package errs provides the typed errors shared by every layer of repairdesk.
//
// Each error type follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - New...Error and New...ErrorWithCause constructors
//   - Unwrap returning the sentinel
//
// The HTTP adapter maps sentinels to status codes, so domain packages wrap
// their own failures in these types instead of inventing new ones where a
// generic kind fits.
package errs

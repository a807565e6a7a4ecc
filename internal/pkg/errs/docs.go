// Package errs provides the error types shared by every layer of the marketplace.
//
// Each kind follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrPermissionDenied, ...) for errors.Is checks
//   - a struct carrying the details, built with New...Error or New...ErrorWithCause
//   - Unwrap returning both the sentinel and the cause, so errors.Is matches either
//
// ErrConcurrentModification has no struct form: repositories wrap it with fmt.Errorf
// when a version-conditional write matched no row.
package errs

// Package errs provides the typed errors shared by the order-management core.
//
// The package includes one error type per failure kind:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed or not allowed
//   - ValueIsOutOfRangeError: a value falls outside its bounds
//   - ObjectNotFoundError: a referenced object does not exist
//   - InvalidStateError: an operation is not allowed in the current state
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() exposing both the sentinel and the cause to errors.Is / errors.As
//
// Callers classify failures with errors.Is against the sentinels; the ops HTTP
// surface maps them to status codes.
package errs

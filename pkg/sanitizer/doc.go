// Package sanitizer provides input normalization for booking data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings or empty slices rather than errors.
//
// Normalization includes:
//   - Free text (appointment notes): strip control characters, collapse whitespace
//   - Clock times: zero-pad to HH:MM, drop a trailing seconds component
//   - Slices: remove duplicates and empty values, keep ascending order
package sanitizer

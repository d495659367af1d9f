// Package sanitizer normalizes user-supplied names before validation and
// storage.
//
// All functions are idempotent: applying them twice gives the same result as
// applying them once. Invalid input is never an error here; it comes back
// empty or unchanged and the validators reject it.
//
// Normalization includes:
//   - Hotel names: trim and collapse inner whitespace
//   - Room numbers: trim and upper-case, keep letters, digits and hyphens
//   - Room types: upper-case with spaces and hyphens turned into underscores
//   - Usernames: trim only, case is significant
package sanitizer

// Package announce picks the announcement shown to a visitor and remembers
// which one the visitor dismissed.
package announce

// Package transform normalizes raw instances before validation by mutating
// their string values recursively, including nested objects and arrays.
package transform

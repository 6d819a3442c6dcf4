// Package utils provides small helpers shared across the client: the resty
// HTTP client constructor, JSON writing and pretty-printing, and id
// generation.
package utils

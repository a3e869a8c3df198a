package hcluster

import "errors"

// Sentinel errors wrapped by every failure this package reports. Match with
// errors.Is; the wrapped message carries the offending value or row index.
var (
	// ErrValidation reports malformed, empty, or shape-mismatched input:
	// a bad linkage matrix, inconsistency matrix, or condensed
	// dissimilarity array.
	ErrValidation = errors.New("hcluster: invalid input")

	// ErrUnsupportedMethod reports a method/metric combination the update
	// recurrence cannot support, such as ward linkage over raw
	// observations with a non-Euclidean metric.
	ErrUnsupportedMethod = errors.New("hcluster: unsupported method")
)

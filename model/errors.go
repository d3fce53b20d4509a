package model

import "fmt"

// ConfigurationError reports an invalid tunable parameter. It is fatal:
// extraction fails before any page is processed.
type ConfigurationError struct {
	Param string
	Value float64
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s = %v (must be positive)", e.Param, e.Value)
}

// MalformedFragmentError reports a fragment with missing or degenerate
// geometry. The owning page is flagged as failed; sibling pages still
// contribute to the result.
type MalformedFragmentError struct {
	Page   int
	Index  int
	Reason string
}

func (e *MalformedFragmentError) Error() string {
	return fmt.Sprintf("page %d: fragment %d: %s", e.Page, e.Index, e.Reason)
}

package search

import "fmt"

// ParseError reports engine output that could not be coerced into either
// accepted JSON shape, even after code-fence stripping. RawResponse carries
// the unmodified engine text for operator diagnosis.
type ParseError struct {
	RawResponse string
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Failed to parse location data: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

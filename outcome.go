package newsrelay

// FailureReason classifies why an article produced no content.
type FailureReason string

// Failure reasons for an Outcome. The zero value means success.
const (
	ReasonEmptyContent FailureReason = "empty_content"
	ReasonFetchError   FailureReason = "fetch_error"
	ReasonParseError   FailureReason = "parse_error"
)

// Outcome is the terminal result of processing one headline.
// Exactly one Outcome is produced per headline.
type Outcome struct {
	// Position is the headline's index in discovery order.
	Position int

	// Headline is the reference the outcome was produced for.
	Headline Headline

	// Article is set on success, and on EmptyContent failures for diagnostics.
	Article *Article

	// Reason is empty on success.
	Reason FailureReason

	// Err is the underlying cause for FetchError and ParseError failures.
	Err error
}

// Succeeded reports whether the outcome carries content.
func (o *Outcome) Succeeded() bool {
	return o.Reason == ""
}

// Message returns a human-readable description of the failure.
func (o *Outcome) Message() string {
	switch {
	case o.Succeeded():
		return ""
	case o.Reason == ReasonEmptyContent:
		return "Empty or no content found"
	case o.Err != nil:
		return o.Err.Error()
	default:
		return string(o.Reason)
	}
}

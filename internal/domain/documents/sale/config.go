package sale

const (
	// NumberPrefix is the document kind marker in generated numbers.
	// Sale sequences are global per day, not per store.
	NumberPrefix = "SAL"
)

package purchase

const (
	// NumberPrefix is the document kind marker in generated numbers.
	NumberPrefix = "PUR"
)

package gemini

const (
	// DefaultAPIURL is the Gemini REST endpoint prefix.
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is used when the config does not name one.
	DefaultModel = "gemini-2.0-flash"
)

package syntax

// TypeFlags classify a token type for the generic editing and formatting logic.
type TypeFlags uint8

const (
	// FlagWhitespace marks inter-token spacing and line breaks.
	FlagWhitespace TypeFlags = 1 << iota

	// FlagComment marks comments.
	FlagComment

	// FlagStrongWhitespaceHolder stops indentation walks from descending into the node.
	FlagStrongWhitespaceHolder

	// FlagInjection marks content in an embedded foreign language.
	FlagInjection
)

// TokenType tags a node with its language-level type.
// Types are compared by identity; languages declare them once as package variables.
type TokenType struct {
	// Name is the display name, e.g. "WHITE_SPACE" or "CODE_BLOCK".
	Name string

	// Language is the name of the owning language. Empty for shared types.
	Language string

	// Flags classify the type for generic logic.
	Flags TypeFlags
}

// NewTokenType declares a token type.
func NewTokenType(language, name string, flags TypeFlags) *TokenType {
	return &TokenType{Name: name, Language: language, Flags: flags}
}

// Has returns true if all of the given flags are set.
// A nil type has no flags.
func (t *TokenType) Has(flags TypeFlags) bool {
	return t != nil && t.Flags&flags == flags
}

// String returns the type name.
func (t *TokenType) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Language == "" {
		return t.Name
	}
	return t.Language + ":" + t.Name
}

// Shared token types.
//
//nolint:gochecknoglobals // Token types are compared by identity.
var (
	// Whitespace is the single whitespace type shared by all languages.
	Whitespace = NewTokenType("", "WHITE_SPACE", FlagWhitespace)

	// File is the default root type for files without a language.
	File = NewTokenType("", "FILE", 0)

	// Text is an opaque leaf type for content no parser classified.
	Text = NewTokenType("", "TEXT", 0)
)

package lang

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/reindent/pkg/syntax"
)

// Registry holds all registered languages.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*Language
	aliases map[string]string // lower-case alias -> canonical name
	byExt   map[string]string // extension -> canonical name
}

// NewRegistry creates an empty language registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]*Language),
		aliases: make(map[string]string),
		byExt:   make(map[string]string),
	}
}

// Register adds a language to the registry.
// If a language with the same name already exists, it is replaced.
func (r *Registry) Register(language *Language) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(language.Name)
	r.byName[name] = language
	for _, alias := range language.Aliases {
		r.aliases[strings.ToLower(alias)] = name
	}
	for _, ext := range language.Extensions {
		r.byExt[strings.ToLower(ext)] = name
	}
}

// Get retrieves a language by name or alias, case-insensitively.
func (r *Registry) Get(name string) (*Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(name)
	if language, ok := r.byName[key]; ok {
		return language, true
	}
	if canonical, ok := r.aliases[key]; ok {
		language, ok := r.byName[canonical]
		return language, ok
	}
	return nil, false
}

// ForNode returns the language owning the node's token type.
func (r *Registry) ForNode(node *syntax.Node) (*Language, bool) {
	if node == nil || node.Language() == "" {
		return nil, false
	}
	return r.Get(node.Language())
}

// ForFile detects the language of a file from its name and content.
// go-enry is consulted first; registered extensions are the fallback.
func (r *Registry) ForFile(path string, content []byte) (*Language, bool) {
	if detected := enry.GetLanguage(filepath.Base(path), content); detected != "" {
		if language, ok := r.Get(detected); ok {
			return language, true
		}
	}

	r.mu.RLock()
	canonical, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return r.Get(canonical)
}

// SpacingBetween applies the spacing rule of the language both leaves belong to.
// Leaves of different languages never require spacing.
func (r *Registry) SpacingBetween(left, right *syntax.Node) Spacing {
	if left == nil || right == nil || left.Language() != right.Language() {
		return SpacingNone
	}
	language, ok := r.ForNode(left)
	if !ok {
		return SpacingNone
	}
	return language.SpacingBetween(left, right)
}

// Languages returns all registered languages sorted by name.
func (r *Registry) Languages() []*Language {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Language, 0, len(r.byName))
	for _, language := range r.byName {
		result = append(result, language)
	}

	slices.SortFunc(result, func(a, b *Language) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return result
}

// DefaultRegistry is the global registry for built-in languages.
// Languages register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for language registration
var DefaultRegistry = NewRegistry()

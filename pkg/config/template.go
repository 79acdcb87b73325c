package config

import (
	"fmt"
	"strings"
)

// templateHeader introduces a generated configuration file.
const templateHeader = `# reindent configuration
#
# indent applies to every language; languages overrides it per language:
#
#   languages:
#     brace:
#       indent_size: 2`

// GenerateTemplate renders the default configuration as commented YAML.
// languages lists the names accepted under the languages key.
func GenerateTemplate(languages []string) ([]byte, error) {
	header := templateHeader
	if len(languages) > 0 {
		header += fmt.Sprintf("\n#\n# Known languages: %s", strings.Join(languages, ", "))
	}

	cfg := NewConfig()
	cfg.Languages = nil
	return cfg.ToYAMLWithHeader(header)
}

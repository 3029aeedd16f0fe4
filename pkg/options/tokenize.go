package options

import (
	"fmt"
	"strings"
)

// Tokenize splits a raw command line into tokens the way a POSIX shell
// would for simple input: whitespace separates tokens, single quotes keep
// everything literal, double quotes allow backslash escapes of \ " $ and `,
// and a backslash outside quotes escapes the next character.
func Tokenize(raw string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inToken bool
		quote   rune
		escaped bool
	)

	for _, r := range raw {
		switch {
		case escaped:
			if quote == '"' && !strings.ContainsRune("\\\"$`", r) {
				current.WriteRune('\\')
			}
			current.WriteRune(r)
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case quote == '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				current.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			inToken = true
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case r == ' ' || r == '\t' || r == '\n':
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote in %q", quote, raw)
	}
	if escaped {
		return nil, fmt.Errorf("trailing backslash in %q", raw)
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

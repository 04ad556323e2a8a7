package pipeline

import "strings"

// Decompose splits a raw tag identifier into its asset and attribute parts.
// The first prefixLength characters are dropped, the remainder is tokenized
// with separator runs attached to the token on their right, so the original
// separators survive concatenation. The leftmost token starts the asset, the
// rightmost token ends the attribute, and middle tokens go to the asset when
// they are all digits and to the attribute otherwise. A single remaining token
// becomes the asset with an empty attribute. Identifiers shorter than
// prefixLength yield two empty strings.
func Decompose(identifier string, prefixLength int, separator rune) (string, string) {
	runes := []rune(identifier)
	if len(runes) < prefixLength {
		return "", ""
	}

	tokens := tokenize(string(runes[prefixLength:]), separator)
	if len(tokens) == 0 {
		return "", ""
	}

	assetParts := []string{tokens[0]}
	var attributeParts []string

	if len(tokens) > 1 {
		for _, token := range tokens[1 : len(tokens)-1] {
			if isAllDigits(strings.TrimLeft(token, string(separator))) {
				assetParts = append(assetParts, token)
			} else {
				attributeParts = append(attributeParts, token)
			}
		}
		attributeParts = append(attributeParts, tokens[len(tokens)-1])
	}

	return strings.Join(assetParts, ""), strings.Join(attributeParts, "")
}

// tokenize splits text into tokens keeping each separator run attached to the
// following non-separator run. A trailing separator run carries no token.
func tokenize(text string, separator rune) []string {
	var tokens []string
	runes := []rune(text)

	i := 0
	for i < len(runes) {
		start := i
		for i < len(runes) && runes[i] == separator {
			i++
		}
		if i == len(runes) {
			break
		}
		for i < len(runes) && runes[i] != separator {
			i++
		}
		tokens = append(tokens, string(runes[start:i]))
	}

	return tokens
}

// isAllDigits reports whether token is non-empty and consists of decimal digits only
func isAllDigits(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

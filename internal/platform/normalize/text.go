package normalize

import "strings"

// QuestionKey is the comparison key for question text: trimmed and
// lowercased. Two questions are duplicates iff their keys are equal.
func QuestionKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Email normalizes an address for lookup and storage.
func Email(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasPrefixFold reports whether s begins with prefix ignoring case and
// surrounding whitespace.
func HasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(QuestionKey(s), strings.ToLower(prefix))
}

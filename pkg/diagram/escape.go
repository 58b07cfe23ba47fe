package diagram

import "strings"

// EscapeLabel prepares a label for embedding in a quoted attribute or edge
// label. Backslashes are escaped before quotes; doing it the other way round
// would re-escape the backslash introduced for the quote and break
// round-trips. Embedded newlines collapse to single spaces and the result is
// trimmed.
func EscapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

// UnescapeLabel reverses EscapeLabel's character escaping: `\"` becomes `"`
// and `\\` becomes `\`. Newline collapsing is lossy and is not reversed.
// A trailing lone backslash is preserved as-is.
func UnescapeLabel(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

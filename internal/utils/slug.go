package utils

import "strings"

// SlugifyName derives a URL-safe username base from a display name:
// lowercased, runs of non-alphanumerics collapsed to single hyphens.
// "Alex Kumar" -> "alex-kumar". Collision suffixing happens at
// registration time, not here.
func SlugifyName(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

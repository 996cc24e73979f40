package catalog

import "strings"

// Slugify converts an article or series name to a URL-friendly slug.
// Path separators and underscores become hyphens, so "rust/async_io"
// becomes "rust-async-io".
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.NewReplacer(" ", "-", "/", "-", "_", "-").Replace(s)

	var buf strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			buf.WriteRune(r)
		}
	}

	result := buf.String()
	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}
	return strings.Trim(result, "-")
}

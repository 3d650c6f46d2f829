package catalog

import "strings"

// NormalizeColor canonicalizes a color label for cache keys and catalog
// matching. Labels arrive in mixed case and both "grey"/"gray" spellings,
// so both collapse onto the American spelling.
func NormalizeColor(color string) string {
	normalized := strings.ToLower(strings.TrimSpace(color))
	normalized = strings.ReplaceAll(normalized, "grey", "gray")
	normalized = strings.Join(strings.Fields(normalized), " ")
	if normalized == "" {
		return "any"
	}
	return normalized
}

// ImageKeyPart joins a part number and color label into the composite key
// used by both the cache and the response payload.
func ImageKeyPart(partNum, colorName string) string {
	return strings.TrimSpace(partNum) + "::" + NormalizeColor(colorName)
}

package engine

import "strings"

// labelVariants returns the normalized spellings a soil-type label is
// matched under: the trimmed label itself, the label without parentheses,
// and the label without any whitespace. Labels flow from free-text
// spreadsheet import, so "Clay (A)", "Clay(A)" and "ClayA" must all meet.
func labelVariants(label string) []string {
	trimmed := strings.TrimSpace(label)
	noParens := strings.NewReplacer("(", "", ")", "").Replace(trimmed)
	noSpace := strings.Join(strings.Fields(trimmed), "")
	noBoth := strings.Join(strings.Fields(noParens), "")
	return []string{trimmed, noParens, noSpace, noBoth}
}

// variantsIntersect reports whether two variant sets share any spelling.
func variantsIntersect(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// FindMaterial matches a soil-type label against the catalog of material
// names known to the model, tolerating parenthesis and whitespace variants
// in either direction. The first catalog entry (in listed order) with any
// matching variant wins, so repeated runs against the same catalog always
// produce the same assignment. Returns false when nothing matches.
func FindMaterial(catalog []string, label string) (string, bool) {
	target := labelVariants(label)
	for _, name := range catalog {
		if variantsIntersect(target, labelVariants(name)) {
			return name, true
		}
	}
	return "", false
}

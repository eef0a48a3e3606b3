package frame

import "regexp"

// rankPrefix matches the taxonomic rank codes some BIOM exporters prepend to
// classification strings: sk__ (superkingdom) or one of d, k, p, c, o, f, g,
// s followed by a double underscore.
var rankPrefix = regexp.MustCompile(`^(sk|[dkpcofgs])__`)

// StripRankPrefixes removes a leading taxonomic rank prefix from every string
// cell of the frame, in place. "k__Bacteria" becomes "Bacteria"; cells
// without a matching prefix and non-string cells are left unchanged.
func StripRankPrefixes(f *Frame) {
	if f == nil {
		return
	}
	for i := range f.cells {
		for j := range f.cells[i] {
			v := f.cells[i][j]
			if v.Kind != KindString {
				continue
			}
			if loc := rankPrefix.FindStringIndex(v.S); loc != nil {
				f.cells[i][j] = String(v.S[loc[1]:])
			}
		}
	}
}

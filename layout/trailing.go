package layout

// TrailingInfo accumulates the whitespace at the visual end of a line.
// Runs add to it from the last run backward.
type TrailingInfo struct {
	Count int     `json:"count"`
	Width float64 `json:"width"`
}

// UpdateTrailingInfo adds the run's trailing spaces to info and reports
// whether the whole run is trailing whitespace, in which case the scan has
// to continue into the preceding run. End runs are always trailing; tabs and
// embedded objects never are.
func (r *TextLineRun) UpdateTrailingInfo(info *TrailingInfo) bool {
	switch r.kind {
	case RunEnd:
		return true
	case RunTab, RunEmbedded:
		return false
	}
	i := r.text.Len()
	for i > 0 && isTrailingSpace(r.text.At(i-1)) {
		info.Count++
		info.Width += r.glyphWidths[i-1]
		i--
	}
	return i == 0
}

func isTrailingSpace(c rune) bool {
	return c == ' ' || c == '\u00a0'
}

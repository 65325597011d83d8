package layout

// DistanceFromCharacter returns the distance from the run's leading edge to
// the leading edge of character index. index is clamped to [0, Length].
func (r *TextLineRun) DistanceFromCharacter(index int) float64 {
	index = clamp(index, 0, r.length)
	if r.atomic() {
		if index == 0 {
			return 0
		}
		return r.width
	}
	var distance float64
	for _, w := range r.glyphWidths[:min(index, len(r.glyphWidths))] {
		distance += w
	}
	return distance
}

// CharacterFromDistance maps a distance from the run's leading edge to the
// character under it. trailing is 1 when the distance lies past the middle of
// that character (the caret belongs after it) and 0 otherwise; an exact
// half-way hit snaps to the leading edge. Distances beyond the run width
// (measured width, not the sum of rounded glyph widths) return the last
// character with trailing 1.
func (r *TextLineRun) CharacterFromDistance(distance float64) (index, trailing int) {
	if r.kind == RunEnd || r.length == 0 {
		return 0, 0
	}
	// rounded glyph widths may add up to more than the measured width
	if distance > r.width {
		return r.length - 1, 1
	}
	for i := 0; i < r.length; i++ {
		w := r.charWidth(i)
		if w > distance {
			if distance > w/2 {
				return i, 1
			}
			return i, 0
		}
		distance -= w
	}
	return r.length - 1, 1
}

// atomic runs have no per-character geometry: their width belongs to the
// run as a whole.
func (r *TextLineRun) atomic() bool {
	return r.kind == RunEnd || r.kind == RunTab || r.kind == RunEmbedded
}

func (r *TextLineRun) charWidth(i int) float64 {
	if r.kind == RunTab || r.kind == RunEmbedded {
		return r.width / float64(r.length)
	}
	if i < len(r.glyphWidths) {
		return r.glyphWidths[i]
	}
	return 0
}

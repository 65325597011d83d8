package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDistanceFromCharacter(t *testing.T) {
	run := mustCreate(t, runSlice{NewCharacters("Wil", bodyProps)}, 0, testOptions())

	assert.Equal(t, 0.0, run.DistanceFromCharacter(0))
	assert.Equal(t, 12.0, run.DistanceFromCharacter(1))
	assert.Equal(t, 15.0, run.DistanceFromCharacter(2))
	assert.Equal(t, 18.0, run.DistanceFromCharacter(3))
	// clamped
	assert.Equal(t, 0.0, run.DistanceFromCharacter(-4))
	assert.Equal(t, 18.0, run.DistanceFromCharacter(9))
}

func TestDistanceFromCharacterAtomicRuns(t *testing.T) {
	tab := mustCreate(t, runSlice{NewCharacters("\t", bodyProps)}, 0, testOptions())
	assert.Equal(t, 0.0, tab.DistanceFromCharacter(0))
	assert.Equal(t, 40.0, tab.DistanceFromCharacter(1))
	assert.Equal(t, 40.0, tab.DistanceFromCharacter(7))

	end := mustCreate(t, runSlice{NewCharacters("\r\n", bodyProps)}, 0, testOptions())
	assert.Equal(t, 0.0, end.DistanceFromCharacter(0))
	assert.Equal(t, end.Width(), end.DistanceFromCharacter(2))

	obj := mustCreate(t, runSlice{EmbeddedObjectRun{Object: &testObject{length: 5, width: 30}}}, 0, testOptions())
	assert.Equal(t, 0.0, obj.DistanceFromCharacter(0))
	assert.Equal(t, 30.0, obj.DistanceFromCharacter(5))
}

// 小数字宽：取整后的字形宽度之和（140）大于实测宽度（132），
// 超出实测宽度的距离仍应落在最后一个字符的后缘。
func TestCharacterFromDistanceFractionalWidths(t *testing.T) {
	m := MeasurerFunc(func(text, _ string, _ float64) (Size, error) {
		return Size{Width: 6.6 * float64(len([]rune(text))), Height: 12}, nil
	})
	text := strings.Repeat("a", 20)
	run := mustCreate(t, runSlice{NewCharacters(text, bodyProps)}, 0, RunOptions{Measurer: m})

	assert.InDelta(t, 132.0, run.Width(), 1e-9)
	assert.Equal(t, 140.0, run.DistanceFromCharacter(run.Length()))

	index, trailing := run.CharacterFromDistance(133)
	assert.Equal(t, 19, index)
	assert.Equal(t, 1, trailing)

	index, trailing = run.CharacterFromDistance(131)
	assert.Equal(t, 18, index)
	assert.Equal(t, 1, trailing)
}

func TestCharacterFromDistance(t *testing.T) {
	// glyphs: W=12, i=3, l=3
	run := mustCreate(t, runSlice{NewCharacters("Wil", bodyProps)}, 0, testOptions())

	tests := []struct {
		distance float64
		index    int
		trailing int
	}{
		{-5, 0, 0},
		{0, 0, 0},
		{5.9, 0, 0},
		{6, 0, 0}, // exact half snaps to the leading edge
		{6.1, 0, 1},
		{11.9, 0, 1},
		{12, 1, 0},
		{13.6, 1, 1},
		{15, 2, 0},
		{17.9, 2, 1},
		{18, 2, 1},
		{100, 2, 1},
	}
	for _, tt := range tests {
		index, trailing := run.CharacterFromDistance(tt.distance)
		assert.Equal(t, tt.index, index, "distance %v", tt.distance)
		assert.Equal(t, tt.trailing, trailing, "distance %v", tt.distance)
	}
}

func TestCharacterFromDistanceSpecialRuns(t *testing.T) {
	end := mustCreate(t, runSlice{NewCharacters("\n", bodyProps)}, 0, testOptions())
	i, tr := end.CharacterFromDistance(50)
	assert.Equal(t, 0, i)
	assert.Equal(t, 0, tr)

	empty := mustCreate(t, runSlice{EmbeddedObjectRun{Object: &testObject{length: 0, width: 10}}}, 0, testOptions())
	i, tr = empty.CharacterFromDistance(5)
	assert.Equal(t, 0, i)
	assert.Equal(t, 0, tr)

	tab := mustCreate(t, runSlice{NewCharacters("\t", bodyProps)}, 0, testOptions())
	i, tr = tab.CharacterFromDistance(19)
	assert.Equal(t, 0, i)
	assert.Equal(t, 0, tr)
	i, tr = tab.CharacterFromDistance(21)
	assert.Equal(t, 0, i)
	assert.Equal(t, 1, tr)

	obj := mustCreate(t, runSlice{EmbeddedObjectRun{Object: &testObject{length: 4, width: 40}}}, 0, testOptions())
	i, tr = obj.CharacterFromDistance(25)
	assert.Equal(t, 2, i)
	assert.Equal(t, 0, tr)
}

func TestHitTestingProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z il]{1,24}`).Draw(rt, "text")
		run, err := CreateRun(runSlice{NewCharacters(text, bodyProps)}, 0, 0, 0, testOptions())
		if err != nil {
			rt.Fatalf("create: %v", err)
		}
		if len(run.GlyphWidths()) != run.StringRange().Len() {
			rt.Fatalf("glyph widths %d != range %d", len(run.GlyphWidths()), run.StringRange().Len())
		}
		if run.DistanceFromCharacter(0) != 0 {
			rt.Fatalf("distance(0) = %v", run.DistanceFromCharacter(0))
		}
		if got := run.DistanceFromCharacter(run.Length()); got != run.Width() {
			rt.Fatalf("distance(len) = %v, width %v", got, run.Width())
		}
		prev := 0.0
		for i := 0; i <= run.Length(); i++ {
			d := run.DistanceFromCharacter(i)
			if d < prev {
				rt.Fatalf("distance not monotonic at %d: %v < %v", i, d, prev)
			}
			prev = d
			index, _ := run.CharacterFromDistance(d)
			if index < 0 || index >= run.Length() {
				rt.Fatalf("index %d outside [0,%d)", index, run.Length())
			}
			if index != i && index != i-1 {
				rt.Fatalf("CharacterFromDistance(DistanceFromCharacter(%d)) = %d", i, index)
			}
		}
		index, trailing := run.CharacterFromDistance(run.Width() + 1)
		if index != run.Length()-1 || trailing != 1 {
			rt.Fatalf("beyond width: got (%d,%d)", index, trailing)
		}
	})
}

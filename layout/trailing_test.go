package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateTrailingInfo(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantAll   bool
		wantCount int
		wantWidth float64
	}{
		{"only spaces", "   ", true, 3, 12},
		{"text then spaces", "ab  ", false, 2, 8},
		{"no-break spaces", "a\u00a0\u00a0", false, 2, 8},
		{"no trailing", "ab", false, 0, 0},
		{"inner spaces only", "a b", false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := mustCreate(t, runSlice{NewCharacters(tt.text, bodyProps)}, 0, testOptions())
			var info TrailingInfo
			assert.Equal(t, tt.wantAll, run.UpdateTrailingInfo(&info))
			assert.Equal(t, tt.wantCount, info.Count)
			assert.Equal(t, tt.wantWidth, info.Width)
		})
	}
}

func TestUpdateTrailingInfoSpecialRuns(t *testing.T) {
	var info TrailingInfo

	end := mustCreate(t, runSlice{NewCharacters("\r\n", bodyProps)}, 0, testOptions())
	assert.True(t, end.UpdateTrailingInfo(&info))

	tab := mustCreate(t, runSlice{NewCharacters("\t", bodyProps)}, 0, testOptions())
	assert.False(t, tab.UpdateTrailingInfo(&info))

	obj := mustCreate(t, runSlice{EmbeddedObjectRun{Object: &testObject{length: 2, width: 9}}}, 0, testOptions())
	assert.False(t, obj.UpdateTrailingInfo(&info))

	assert.Equal(t, TrailingInfo{}, info)
}

func TestUpdateTrailingInfoAccumulates(t *testing.T) {
	var info TrailingInfo
	first := mustCreate(t, runSlice{NewCharacters("x  ", bodyProps)}, 0, testOptions())
	second := mustCreate(t, runSlice{NewCharacters("  ", bodyProps)}, 0, testOptions())

	assert.True(t, second.UpdateTrailingInfo(&info))
	assert.False(t, first.UpdateTrailingInfo(&info))
	assert.Equal(t, TrailingInfo{Count: 4, Width: 16}, info)
}

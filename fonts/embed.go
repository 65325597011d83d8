// Package fonts exposes the Latin Modern faces bundled with the binary.
package fonts

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-fonts/latin-modern/lmmono10italic"
	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10oblique"
	"github.com/go-fonts/latin-modern/lmsans10regular"
)

// Default is the face used when a font source cannot be loaded.
const Default = "lmsans10-regular"

var builtin = map[string][]byte{
	"lmsans10-regular":     lmsans10regular.TTF,
	"lmsans10-bold":        lmsans10bold.TTF,
	"lmsans10-oblique":     lmsans10oblique.TTF,
	"lmroman10-regular":    lmroman10regular.TTF,
	"lmroman10-bold":       lmroman10bold.TTF,
	"lmroman10-italic":     lmroman10italic.TTF,
	"lmroman10-bolditalic": lmroman10bolditalic.TTF,
	"lmmono10-regular":     lmmono10regular.TTF,
	"lmmono10-italic":      lmmono10italic.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:lmsans10-regular" 或直接 "lmsans10-regular"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "embed:"))
	key = strings.TrimSuffix(key, ".ttf")
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 未知字体", name)
	}
	return data, nil
}

// Names lists the bundled faces in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(builtin))
}

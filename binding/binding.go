// Package binding fills ${path} placeholders in script text from JSON data.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// Placeholders whose path does not resolve are left as written.
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if val, ok := Lookup(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Lookup resolves a dotted path with optional [n] indexes, e.g.
// "items[0].name", against data decoded by encoding/json.
func Lookup(data any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, rest, _ := strings.Cut(segment, "[")
		if name != "" {
			obj, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			if current, ok = obj[name]; !ok {
				return nil, false
			}
		}
		for rest != "" {
			idxStr, after, found := strings.Cut(rest, "]")
			if !found {
				return nil, false
			}
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			arr, ok := current.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
			rest = strings.TrimPrefix(after, "[")
		}
	}
	return current, true
}

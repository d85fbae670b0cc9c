package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Fields 是一条记录可供替换的字段，值为 JSON/YAML 解码后的原始结构。
type Fields map[string]any

// Interpolate 将 handle/prompt 文本中的 ${name} 或 ${meta.tags[0]} 替换为字段值。
// 路径不存在时保留原占位符。
func Interpolate(text string, fields Fields) string {
	if len(fields) == 0 || !strings.Contains(text, "${") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(placeholder.FindStringSubmatch(match)[1])
		if val, ok := Lookup(fields, path); ok {
			return format(val)
		}
		return match
	})
}

// Lookup 按点号路径取值，段内可带下标，例如 meta.tags[1]。
func Lookup(fields Fields, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var current any = map[string]any(fields)
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			m, isMap := current.(map[string]any)
			if !isMap {
				return nil, false
			}
			if current, ok = m[name]; !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			list, isList := current.([]any)
			if !isList || idx < 0 || idx >= len(list) {
				return nil, false
			}
			current = list[idx]
		}
	}
	return current, true
}

func splitSegment(segment string) (string, []int, bool) {
	i := strings.IndexByte(segment, '[')
	if i == -1 {
		return segment, nil, true
	}
	name, rest := segment[:i], segment[i:]
	var indexes []int
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end == -1 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSON 数字统一解码为 float64，整数不带小数点输出
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

package layout

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// stubTypesetter 是等宽字体的最小实现：每个字符宽 0.5em，行高 1.2em。
// fail 返回 true 时模拟字体加载或测量失败。
type stubTypesetter struct {
	fail  func(content string, size float64) bool
	calls int
}

func (s *stubTypesetter) MeasureText(content string, font FontResource, size float64) (float64, float64, error) {
	s.calls++
	if s.fail != nil && s.fail(content, size) {
		return 0, 0, errors.New("measure failed")
	}
	if content == "" {
		return 0, 0, nil
	}
	lines := strings.Split(content, "\n")
	widest := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > widest {
			widest = n
		}
	}
	return float64(widest) * size * 0.5, float64(len(lines)) * size * 1.2, nil
}

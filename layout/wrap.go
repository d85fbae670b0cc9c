package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap 按列宽做贪心折行：只在空白处断行，连续空白（含换行）视为一个空格；
// 超过列宽的单词不拆分，独占一行并溢出。列宽按终端显示宽度计算，CJK 字符占两列。
func Wrap(text string, columns int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	if columns <= 0 {
		return strings.Join(words, " ")
	}

	var lines []string
	var line strings.Builder
	width := 0
	for _, word := range words {
		w := runewidth.StringWidth(word)
		if width > 0 && width+1+w > columns {
			lines = append(lines, line.String())
			line.Reset()
			width = 0
		}
		if width > 0 {
			line.WriteByte(' ')
			width++
		}
		line.WriteString(word)
		width += w
	}
	lines = append(lines, line.String())
	return strings.Join(lines, "\n")
}

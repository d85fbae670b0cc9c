package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// selectionToPositions 解析 --only 的取值，例如 "3"、"1,3-5"、"-2"、"4-"。
// 位置从 1 开始，total 为记录源中最后一条记录的位置。空字符串表示全部，返回 nil。
func selectionToPositions(selection string, total int) ([]int, error) {
	if selection == "" {
		return nil, nil
	}

	var result []int
	for _, part := range strings.Split(selection, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, "-") {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("无效的位置: %s", part)
			}
			if n < 1 || n > total {
				return nil, fmt.Errorf("位置超出范围: %d（共 %d 条）", n, total)
			}
			result = append(result, n)
			continue
		}

		bounds := strings.Split(part, "-")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("无效的范围: %s", part)
		}
		start, end := 1, total
		var err error
		if bounds[0] != "" {
			if start, err = strconv.Atoi(bounds[0]); err != nil {
				return nil, fmt.Errorf("无效的位置: %s", bounds[0])
			}
		}
		if bounds[1] != "" {
			if end, err = strconv.Atoi(bounds[1]); err != nil {
				return nil, fmt.Errorf("无效的位置: %s", bounds[1])
			}
		}
		if start < 1 || end > total || start > end {
			return nil, fmt.Errorf("无效的范围: %s（共 %d 条）", part, total)
		}
		for i := start; i <= end; i++ {
			result = append(result, i)
		}
	}
	return result, nil
}

package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FallbackSrc 是内置兜底字体的引用，字体文件缺失或无法解析时使用。
const FallbackSrc = "embed:go-regular"

var builtin = map[string][]byte{
	"go-regular": goregular.TTF,
	"go-bold":    gobold.TTF,
}

// IsEmbedded 判断 src 是否指向内置字体。
func IsEmbedded(src string) bool {
	return strings.HasPrefix(src, "embed:")
}

// Load 返回内置字体的字节数据，name 可写为 "embed:go-regular" 或直接 "go-regular"。
func Load(name string) ([]byte, error) {
	key := strings.TrimPrefix(name, "embed:")
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 不存在", key)
	}
	return data, nil
}

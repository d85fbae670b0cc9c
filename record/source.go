package record

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/fesscard/binding"
)

const (
	DefaultDate = "No Date"
	DefaultText = "No Text"
)

// Confession 是记录源中的一条投稿。Position 从 1 开始，
// 与输入列表中的下标一一对应，跳过的记录同样占用编号。
type Confession struct {
	Position int
	Date     string
	Text     string
	Promoted bool
	raw      map[string]any
}

// Fields 返回可用于 ${...} 替换的字段，包含原始记录中的全部键。
func (c Confession) Fields() binding.Fields {
	fields := binding.Fields{}
	for k, v := range c.raw {
		fields[k] = v
	}
	fields["position"] = c.Position
	fields["date"] = c.Date
	fields["text"] = c.Text
	return fields
}

// Load 读取记录源。扩展名为 .yaml/.yml 时按 YAML 解析，否则按 JSON 解析。
// 文件不可读、内容无法解析或顶层不是列表都会返回错误；
// 单个元素不是对象时记录警告并跳过，但仍占用其位置编号。
func Load(path string, logger *slog.Logger) (_ []Confession, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取记录源 %s 失败: %w", path, err)
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &doc)
	default:
		err = json.Unmarshal(b, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("解析记录源 %s 失败: %w", path, err)
	}
	return Decode(doc, logger)
}

// Decode 将已解码的文档转换为记录列表。
func Decode(doc any, logger *slog.Logger) ([]Confession, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	items, ok := doc.([]any)
	if !ok {
		if doc == nil {
			return nil, fmt.Errorf("记录源为空，期望一个列表")
		}
		return nil, fmt.Errorf("记录源顶层必须是列表，实际为 %T", doc)
	}
	confessions := make([]Confession, 0, len(items))
	for i, item := range items {
		position := i + 1
		m, ok := asMap(item)
		if !ok {
			logger.Warn("记录不是对象，已跳过", slog.Int("position", position), slog.String("type", fmt.Sprintf("%T", item)))
			continue
		}
		confessions = append(confessions, Confession{
			Position: position,
			Date:     stringField(m, "date", DefaultDate),
			Text:     stringField(m, "text", DefaultText),
			Promoted: truthy(m["promoted"]),
			raw:      m,
		})
	}
	return confessions, nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// stringField 读取文本字段并做 NFC 规范化，缺失或为 null 时返回默认值。
func stringField(m map[string]any, key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = fmt.Sprint(x)
	}
	return norm.NFC.String(s)
}

// truthy 判断 promoted 是否为真：布尔值、非零数字、非空字符串或非空集合。
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

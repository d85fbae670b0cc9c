package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteDebugJSON 将卡片布局输出为 confession_<n>.json，便于核对字号与坐标。
func WriteDebugJSON(card *Card, dir string) (string, error) {
	if card == nil {
		return "", nil
	}
	data, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("confession_%d.json", card.Position))
	return path, os.WriteFile(path, data, 0o644)
}

package layout

import (
	"encoding/json"
	"os"
)

// MarshalDebug 将布局结果编码为带缩进的 JSON。
func MarshalDebug(res *Result) ([]byte, error) {
	if res == nil {
		return []byte("null"), nil
	}
	return json.MarshalIndent(res, "", "  ")
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试锚点与连线。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := MarshalDebug(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

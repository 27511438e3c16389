package logging

import "strings"

// MaskHex は鍵素材などのHex文字列をマスキングする。
// 先頭4文字 + マスク文字('*') + 末尾2文字の形式で出力する。
// enabled=falseまたは文字列長が6以下の場合はそのまま返す。
func MaskHex(hexStr string, enabled bool) string {
	if !enabled || len(hexStr) <= 6 {
		return hexStr
	}
	return hexStr[:4] + strings.Repeat("*", len(hexStr)-6) + hexStr[len(hexStr)-2:]
}

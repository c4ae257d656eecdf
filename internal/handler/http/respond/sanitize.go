package respond

import (
	"regexp"
)

var (
	// プロバイダー別 API キーのパターン
	// sk-ant- は sk- より先にマスクする
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	// マスク済み文字列（* を含む）には再マッチしない
	openaiKeyPattern = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// Gemini のキーは AIza プレフィックス
	geminiKeyPattern = regexp.MustCompile(`AIza[a-zA-Z0-9-_]{30,}`)

	// DSN に埋め込まれたパスワード
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)
)

// SanitizeError returns the error message with provider keys and DSN
// passwords masked, safe to write to logs.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// 具体的なパターンから順に適用
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = geminiKeyPattern.ReplaceAllString(msg, "AIza****")

	// DSN のパスワードをマスク
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}

package extract

import (
	"fmt"
	"strings"

	"rsc.io/pdf"
)

// extractPDF は全ページのテキストを連結して返します。
// テキストを持たないページは空文字列として扱います (エラーにしない)。
func extractPDF(path string) (text string, err error) {
	// rsc.io/pdf は不正なファイルで panic することがあるため、ここで回収する
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		for _, t := range content.Text {
			sb.WriteString(t.S)
		}
	}
	return sb.String(), nil
}

// Package extract はアップロードされた学習資料からプレーンテキストを取り出します。
package extract

import (
	"fmt"
	"os"
	"strings"

	"go_5_quick_notes/internal/model"
)

// Extractor はファイル種別ごとのテキスト抽出を抽象化します。
// 抽出の失敗は必ず error として返し、エラーメッセージを本文として
// 下流(要約)に流すことはしません。
type Extractor interface {
	Extract(path string, ext string) (string, error)
}

// FileExtractor は拡張子ディスパッチ式の Extractor 実装です。
type FileExtractor struct{}

func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// Extract は path のファイルからテキストを取り出します。
// ext は先頭のドットを含む小文字の拡張子 (例: ".pdf") を想定します。
func (e *FileExtractor) Extract(path string, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return extractPDF(path)
	case ".pptx":
		return extractPPTX(path)
	case ".txt":
		return extractPlain(path)
	default:
		return "", fmt.Errorf("%w: %s", model.ErrUnsupportedFileType, ext)
	}
}

// extractPlain はテキストファイルの内容をそのまま返します。
func extractPlain(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(b), nil
}

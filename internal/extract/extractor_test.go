package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"go_5_quick_notes/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePPTX は指定した zip エントリ順で pptx ファイルを生成します。
// スライドの zip 内の並びと番号順が一致しないケースを再現するためのヘルパーです。
func writePPTX(t *testing.T, entries [][2]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slides.pptx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		require.NoError(t, err)
		_, err = w.Write([]byte(e[1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func slideXML(shapes ...[]string) string {
	xml := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:cSld><p:spTree>`
	for _, paragraphs := range shapes {
		xml += `<p:sp><p:txBody>`
		for _, para := range paragraphs {
			xml += `<a:p><a:r><a:t>` + para + `</a:t></a:r></a:p>`
		}
		xml += `</p:txBody></p:sp>`
	}
	xml += `</p:spTree></p:cSld></p:sld>`
	return xml
}

func TestFileExtractor_Extract_Text(t *testing.T) {
	extractor := NewFileExtractor()

	t.Run("正常系: テキストファイルは内容をそのまま返す", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		content := "今日の講義のメモです。\nRDBMS の正規化について。"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		text, err := extractor.Extract(path, ".txt")
		require.NoError(t, err)
		assert.Equal(t, content, text)
	})

	t.Run("正常系: 拡張子は大文字でも受け付ける", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "NOTES.TXT")
		require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

		text, err := extractor.Extract(path, ".TXT")
		require.NoError(t, err)
		assert.Equal(t, "hello", text)
	})

	t.Run("異常系: ファイルが存在しない場合はエラー", func(t *testing.T) {
		_, err := extractor.Extract(filepath.Join(t.TempDir(), "missing.txt"), ".txt")
		assert.Error(t, err)
	})
}

func TestFileExtractor_Extract_Unsupported(t *testing.T) {
	extractor := NewFileExtractor()

	_, err := extractor.Extract("whatever.exe", ".exe")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnsupportedFileType)
}

func TestFileExtractor_Extract_PPTX(t *testing.T) {
	extractor := NewFileExtractor()

	t.Run("正常系: zip 内の順序に関わらずスライド番号順に連結する", func(t *testing.T) {
		path := writePPTX(t, [][2]string{
			{"ppt/slides/slide2.xml", slideXML([]string{"Second slide"})},
			{"[Content_Types].xml", `<?xml version="1.0"?><Types/>`},
			{"ppt/slides/slide1.xml", slideXML([]string{"Title"}, []string{"Body line one", "Body line two"})},
			{"ppt/slides/slide10.xml", slideXML([]string{"Tenth slide"})},
		})

		text, err := extractor.Extract(path, ".pptx")
		require.NoError(t, err)
		assert.Equal(t, "Title\nBody line one\nBody line two\nSecond slide\nTenth slide\n", text)
	})

	t.Run("正常系: テキストを持たないシェイプは無視される", func(t *testing.T) {
		xml := `<?xml version="1.0"?>` +
			`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
			` xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
			`<p:cSld><p:spTree>` +
			`<p:sp><p:nvSpPr/></p:sp>` +
			`<p:sp><p:txBody><a:p><a:r><a:t>Visible</a:t></a:r></a:p></p:txBody></p:sp>` +
			`</p:spTree></p:cSld></p:sld>`
		path := writePPTX(t, [][2]string{{"ppt/slides/slide1.xml", xml}})

		text, err := extractor.Extract(path, ".pptx")
		require.NoError(t, err)
		assert.Equal(t, "Visible\n", text)
	})

	t.Run("正常系: スライドのない pptx は空文字列", func(t *testing.T) {
		path := writePPTX(t, [][2]string{{"[Content_Types].xml", `<?xml version="1.0"?><Types/>`}})

		text, err := extractor.Extract(path, ".pptx")
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("異常系: zip として読めないファイルはエラー", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.pptx")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

		_, err := extractor.Extract(path, ".pptx")
		assert.Error(t, err)
	})
}

func TestFileExtractor_Extract_PDF(t *testing.T) {
	t.Run("異常系: ファイルが存在しない場合はエラー", func(t *testing.T) {
		extractor := NewFileExtractor()
		_, err := extractor.Extract(filepath.Join(t.TempDir(), "missing.pdf"), ".pdf")
		assert.Error(t, err)
	})
}

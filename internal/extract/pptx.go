package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slideNameRe = regexp.MustCompile(`^ppt/slides/slide([0-9]+)\.xml$`)

// extractPPTX は全スライドのテキストを持つシェイプの内容を連結して返します。
// シェイプごとに改行を1つ挟みます。
// pptx は zip アーカイブで、各スライドは ppt/slides/slideN.xml に
// DrawingML (<p:sp> 内の <a:t> ラン) として格納されています。
func extractPPTX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open pptx: %w", err)
	}
	defer archive.Close()

	// スライドを番号順に並べる (zip内の順序は保証されない)
	type slideFile struct {
		num  int
		file *zip.File
	}
	var slides []slideFile
	for _, f := range archive.File {
		m := slideNameRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slideFile{num: num, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var sb strings.Builder
	for _, s := range slides {
		if err := appendSlideText(&sb, s.file); err != nil {
			return "", fmt.Errorf("slide %d: %w", s.num, err)
		}
	}
	return sb.String(), nil
}

// appendSlideText は1スライド分のXMLを走査し、シェイプ(<sp>)単位でテキストを集めます。
func appendSlideText(out *strings.Builder, f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open slide xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)

	var (
		shapeDepth int // ネストした <sp> 対応 (グループシェイプ)
		inRun      bool
		hasBody    bool
		shapeText  strings.Builder
	)

	flushShape := func() {
		if !hasBody {
			return
		}
		out.WriteString(strings.TrimRight(shapeText.String(), "\n"))
		out.WriteString("\n")
		shapeText.Reset()
		hasBody = false
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("parse slide xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sp":
				shapeDepth++
			case "txBody":
				if shapeDepth > 0 {
					hasBody = true
				}
			case "t":
				if shapeDepth > 0 {
					inRun = true
				}
			}
		case xml.CharData:
			if inRun {
				shapeText.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				// 段落の区切り
				if shapeDepth > 0 && hasBody {
					shapeText.WriteString("\n")
				}
			case "sp":
				flushShape()
				if shapeDepth > 0 {
					shapeDepth--
				}
			}
		}
	}
	return nil
}

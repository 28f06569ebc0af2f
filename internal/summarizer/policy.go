// Package summarizer はクイックノート生成の長さ制御と要約バックエンドを提供します。
package summarizer

import (
	"fmt"
	"math"
	"strings"

	"go_5_quick_notes/internal/model"
)

// 学習速度ごとの要約語数の上限。
const (
	maxWordsSlow    = 50
	maxWordsAverage = 100
	maxWordsFast    = 150

	// これより短い入力は要約対象としない
	minInputWords = 10
)

// CountWords は空白区切りの語数を返します。
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// PlanLength は入力語数と学習速度から要約の語数範囲 (min, max) を決定します。
// wordCount < 10 の場合は model.ErrTextTooShort を返します。
// min は学習速度でクランプした後の max から導出するため、常に min <= max が成り立ちます。
func PlanLength(wordCount int, speed model.LearningSpeed) (minWords, maxWords int, err error) {
	if wordCount < minInputWords {
		return 0, 0, fmt.Errorf("%w: %d words", model.ErrTextTooShort, wordCount)
	}

	maxWords = int(math.Round(float64(wordCount) * 0.8))
	if maxWords > maxWordsFast {
		maxWords = maxWordsFast
	}

	switch speed {
	case model.SpeedSlow:
		if maxWords > maxWordsSlow {
			maxWords = maxWordsSlow
		}
	case model.SpeedFast:
		// 上限は maxWordsFast のまま
	default:
		// 未設定や不正値は Average として扱う
		if maxWords > maxWordsAverage {
			maxWords = maxWordsAverage
		}
	}

	minWords = int(math.Round(float64(maxWords) * 0.3))
	return minWords, maxWords, nil
}

package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_5_quick_notes/internal/model"
)

func TestPlanLength(t *testing.T) {
	tests := []struct {
		name        string
		wordCount   int
		speed       model.LearningSpeed
		wantMin     int
		wantMax     int
		wantErrIs   error
	}{
		{
			name:      "正常系: Slow は最大50語にクランプされる",
			wordCount: 1000,
			speed:     model.SpeedSlow,
			wantMin:   15,
			wantMax:   50,
		},
		{
			name:      "正常系: Average は最大100語にクランプされる",
			wordCount: 1000,
			speed:     model.SpeedAverage,
			wantMin:   30,
			wantMax:   100,
		},
		{
			name:      "正常系: Fast は最大150語まで許容される",
			wordCount: 1000,
			speed:     model.SpeedFast,
			wantMin:   45,
			wantMax:   150,
		},
		{
			name:      "正常系: 短い入力では語数の8割が上限になる",
			wordCount: 40,
			speed:     model.SpeedFast,
			wantMin:   10, // round(32 * 0.3)
			wantMax:   32, // round(40 * 0.8)
		},
		{
			name:      "正常系: クランプ後の上限から下限を導出する",
			wordCount: 500, // 8割 = 400 だが Slow で 50 にクランプ
			speed:     model.SpeedSlow,
			wantMin:   15, // round(50 * 0.3) であって round(150 * 0.3) ではない
			wantMax:   50,
		},
		{
			name:      "正常系: 境界値 10 語は要約できる",
			wordCount: 10,
			speed:     model.SpeedAverage,
			wantMin:   2, // round(8 * 0.3)
			wantMax:   8, // round(10 * 0.8)
		},
		{
			name:      "正常系: 未設定のスピードは Average として扱う",
			wordCount: 1000,
			speed:     model.LearningSpeed(""),
			wantMin:   30,
			wantMax:   100,
		},
		{
			name:      "異常系: 10語未満は ErrTextTooShort",
			wordCount: 9,
			speed:     model.SpeedAverage,
			wantErrIs: model.ErrTextTooShort,
		},
		{
			name:      "異常系: 空テキストは ErrTextTooShort",
			wordCount: 0,
			speed:     model.SpeedFast,
			wantErrIs: model.ErrTextTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax, err := PlanLength(tt.wordCount, tt.speed)

			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, gotMin)
			assert.Equal(t, tt.wantMax, gotMax)
			assert.LessOrEqual(t, gotMin, gotMax)
			assert.GreaterOrEqual(t, gotMax, 1)
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "正常系: 空白区切りで数える", text: "one two three", want: 3},
		{name: "正常系: 連続する空白や改行は1つの区切り", text: "one  two\nthree\t four", want: 4},
		{name: "正常系: 空文字は0語", text: "", want: 0},
		{name: "正常系: 空白のみは0語", text: "   \n\t ", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWords(tt.text))
		})
	}
}

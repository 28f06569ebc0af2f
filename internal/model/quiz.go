// internal/model/quiz.go
package model

// QuizQuestion は学習タイプ診断の設問です (静的な設定データ、DBには保存しない)
// Options と Types は同じ長さの並行スライスで、選択肢ごとに学習タイプが対応します
type QuizQuestion struct {
	Prompt  string         `json:"question"`
	Options []string       `json:"options"`
	Types   []LearningType `json:"-"`
}

// QuizAnswer は1問分の回答 (選択肢そのものを送る)
type QuizAnswer struct {
	QuestionIndex int    `json:"question_index" validate:"min=0"`
	Selected      string `json:"selected" validate:"required"`
}

// SubmitQuizRequest は診断結果送信リクエストのDTO
type SubmitQuizRequest struct {
	Answers       []QuizAnswer  `json:"answers" validate:"required,min=1,dive"`
	LearningSpeed LearningSpeed `json:"learning_speed" validate:"required,oneof=Slow Average Fast"`
}

// QuizResultResponse は診断完了時のレスポンス
type QuizResultResponse struct {
	LearningType  LearningType  `json:"learning_type"`
	LearningSpeed LearningSpeed `json:"learning_speed"`
}

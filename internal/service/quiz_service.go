package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_quick_notes/internal/config"
	"go_5_quick_notes/internal/middleware"
	"go_5_quick_notes/internal/model"
	"go_5_quick_notes/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// quizQuestions は学習タイプ診断の設問セット (静的データ)
var quizQuestions = []model.QuizQuestion{
	{
		Prompt:  "How do you prefer to learn new material?",
		Options: []string{"Reading books or articles", "Watching videos", "Listening to lectures or podcasts", "Hands-on practice"},
		Types:   []model.LearningType{model.LearningTypeReading, model.LearningTypeWatching, model.LearningTypeListening, model.LearningTypeDoing},
	},
	{
		Prompt:  "What helps you retain information best?",
		Options: []string{"Taking notes while reading", "Watching demonstrations", "Discussing with others", "Doing exercises"},
		Types:   []model.LearningType{model.LearningTypeReading, model.LearningTypeWatching, model.LearningTypeListening, model.LearningTypeDoing},
	},
	{
		Prompt:  "How do you prepare for exams?",
		Options: []string{"Reading textbooks", "Watching review videos", "Listening to recordings", "Practicing problems"},
		Types:   []model.LearningType{model.LearningTypeReading, model.LearningTypeWatching, model.LearningTypeListening, model.LearningTypeDoing},
	},
}

type QuizService interface {
	Questions(ctx context.Context) []model.QuizQuestion
	Submit(ctx context.Context, userID uuid.UUID, req *model.SubmitQuizRequest) (*model.QuizResultResponse, error)
}

type quizService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	notifier Notifier
	cfg      *config.Config
}

func NewQuizService(db *gorm.DB, userRepo repository.UserRepository, notifier Notifier, cfg *config.Config) QuizService {
	return &quizService{
		db:       db,
		userRepo: userRepo,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Questions は診断の設問セットを返します
func (s *quizService) Questions(ctx context.Context) []model.QuizQuestion {
	return quizQuestions
}

// Submit は回答を集計して学習タイプを決定し、ユーザーに保存します。
// 学習スピードは自己申告値をそのまま採用します。
// 決定後、保護者への通知を非同期で送信します (失敗しても結果には影響しない)。
func (s *quizService) Submit(ctx context.Context, userID uuid.UUID, req *model.SubmitQuizRequest) (*model.QuizResultResponse, error) {
	logger := middleware.GetLogger(ctx)

	if !model.ValidSpeed(req.LearningSpeed) {
		return nil, model.NewAppError("INVALID_LEARNING_SPEED", "学習スピードは Slow / Average / Fast のいずれかを指定してください。", "learning_speed", model.ErrInvalidInput)
	}

	learningType, err := tallyAnswers(req.Answers)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error finding user for quiz submission", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	if err := s.userRepo.UpdateLearningProfile(ctx, s.db, userID, learningType, req.LearningSpeed); err != nil {
		logger.Error("Failed to update learning profile", "error", err, "user_id", userID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習プロフィールの更新に失敗しました。", "", err)
	}

	logger.Info("Quiz completed", "user_id", userID.String(), "learning_type", learningType, "learning_speed", req.LearningSpeed)

	// 保護者への通知はベストエフォート。リクエストの成否には影響させない。
	// リクエスト終了で打ち切られないよう、キャンセルを切り離したコンテキストで送る。
	go s.notifyParent(context.WithoutCancel(ctx), user, learningType, req.LearningSpeed)

	return &model.QuizResultResponse{
		LearningType:  learningType,
		LearningSpeed: req.LearningSpeed,
	}, nil
}

// tallyAnswers は回答を検証しつつ学習タイプ別に集計します。
// 全設問に1回ずつ回答していることが前提で、部分回答や同じ設問への重複回答は
// 集計を歪めるため受け付けません。
// 同数の場合は Reading, Watching, Listening, Doing の順で先に現れたタイプを採用します。
func tallyAnswers(answers []model.QuizAnswer) (model.LearningType, error) {
	if len(answers) != len(quizQuestions) {
		return "", model.NewAppError("INVALID_ANSWER", "すべての設問に回答してください。", "answers", model.ErrInvalidInput)
	}

	counts := make(map[model.LearningType]int, len(model.AllLearningTypes))
	answered := make(map[int]bool, len(quizQuestions))

	for _, ans := range answers {
		if ans.QuestionIndex < 0 || ans.QuestionIndex >= len(quizQuestions) {
			return "", model.NewAppError("INVALID_ANSWER", "存在しない設問への回答が含まれています。", "answers", model.ErrInvalidInput)
		}
		if answered[ans.QuestionIndex] {
			return "", model.NewAppError("INVALID_ANSWER", "同じ設問への回答が複数含まれています。", "answers", model.ErrInvalidInput)
		}
		answered[ans.QuestionIndex] = true
		q := quizQuestions[ans.QuestionIndex]

		matched := false
		for i, opt := range q.Options {
			if opt == ans.Selected {
				counts[q.Types[i]]++
				matched = true
				break
			}
		}
		if !matched {
			return "", model.NewAppError("INVALID_ANSWER", "設問の選択肢にない回答が含まれています。", "answers", model.ErrInvalidInput)
		}
	}

	best := model.LearningTypeUnset
	bestCount := -1
	for _, lt := range model.AllLearningTypes {
		if counts[lt] > bestCount {
			best = lt
			bestCount = counts[lt]
		}
	}
	return best, nil
}

func (s *quizService) notifyParent(ctx context.Context, user *model.User, learningType model.LearningType, learningSpeed model.LearningSpeed) {
	logger := middleware.GetLogger(ctx)

	notifyCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	body := fmt.Sprintf("Your child %s completed the quiz. Learning type: %s, Learning speed: %s.", user.Username, learningType, learningSpeed)
	if err := s.notifier.Notify(notifyCtx, user.ParentContact, body); err != nil {
		logger.Warn("Failed to notify parent of quiz completion", "error", err, "user_id", user.UserID.String())
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"go_5_quick_notes/internal/config"
	"go_5_quick_notes/internal/middleware"
	"go_5_quick_notes/internal/model"
	"go_5_quick_notes/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RevisionService interface {
	PickRandom(ctx context.Context, userID uuid.UUID) (*model.RevisionResponse, error)
	NotifyRevisionDone(ctx context.Context, userID uuid.UUID) error
}

type revisionService struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	revisionRepo repository.RevisionRepository
	notifier     Notifier
	cfg          *config.Config
}

func NewRevisionService(db *gorm.DB, userRepo repository.UserRepository, revisionRepo repository.RevisionRepository, notifier Notifier, cfg *config.Config) RevisionService {
	return &revisionService{
		db:           db,
		userRepo:     userRepo,
		revisionRepo: revisionRepo,
		notifier:     notifier,
		cfg:          cfg,
	}
}

// PickRandom はそのユーザーの要約レコードから一様ランダムに1件返します。
// 1件もない場合は ErrNotFound です。
func (s *revisionService) PickRandom(ctx context.Context, userID uuid.UUID) (*model.RevisionResponse, error) {
	logger := middleware.GetLogger(ctx)

	revisions, err := s.revisionRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to load revisions", "error", err, "user_id", userID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習データの取得に失敗しました。", "", err)
	}
	if len(revisions) == 0 {
		return nil, model.NewAppError("NO_REVISIONS", "復習できる要約がまだありません。", "", model.ErrNotFound)
	}

	picked := revisions[rand.Intn(len(revisions))]
	return &model.RevisionResponse{
		RevisionID: picked.RevisionID,
		Notes:      picked.Content,
		Filename:   filepath.Base(picked.FilePath),
		CreatedAt:  picked.CreatedAt,
	}, nil
}

// NotifyRevisionDone は復習完了を保護者に通知します。
// 送信は非同期のベストエフォートで、受付時点で成功を返します。
func (s *revisionService) NotifyRevisionDone(ctx context.Context, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error finding user for revision notification", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	go func(ctx context.Context) {
		logger := middleware.GetLogger(ctx)

		notifyCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		body := fmt.Sprintf("Your child %s has completed their revision.", user.Username)
		if err := s.notifier.Notify(notifyCtx, user.ParentContact, body); err != nil {
			logger.Warn("Failed to notify parent of revision completion", "error", err, "user_id", user.UserID.String())
		}
	}(context.WithoutCancel(ctx))

	return nil
}

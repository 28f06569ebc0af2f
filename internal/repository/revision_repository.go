//go:generate mockery --name RevisionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_5_quick_notes/internal/middleware"
	"go_5_quick_notes/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RevisionRepository は要約レコードの追記と取得のみを提供します。
// 復習用の蓄積なので更新・削除は定義しません。
type RevisionRepository interface {
	Create(ctx context.Context, db *gorm.DB, revision *model.Revision) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Revision, error)
}

type gormRevisionRepository struct{}

func NewGormRevisionRepository() RevisionRepository {
	return &gormRevisionRepository{}
}

func (r *gormRevisionRepository) Create(ctx context.Context, db *gorm.DB, revision *model.Revision) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(revision)
	if result.Error != nil {
		logger.Error(
			"Error creating revision in DB",
			"error", result.Error,
			"user_id", revision.UserID.String(),
		)
		return fmt.Errorf("gormRevisionRepository.Create: %w", result.Error)
	}

	return nil
}

func (r *gormRevisionRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Revision, error) {
	logger := middleware.GetLogger(ctx)
	var revisions []*model.Revision

	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&revisions)
	if result.Error != nil {
		logger.Error(
			"Error finding revisions by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormRevisionRepository.FindByUser: %w", result.Error)
	}

	return revisions, nil
}

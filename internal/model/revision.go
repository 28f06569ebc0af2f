// internal/model/revision.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Revision はアップロードごとに生成された要約の保存レコードです
// 更新・削除は行わない (復習用に蓄積するのみ)
type Revision struct {
	RevisionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"revision_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Content    string    `gorm:"not null" json:"content"` // 生成された要約 (クイックノート)
	FilePath   string    `json:"file_path"`               // 元ファイルの保存パス
	CreatedAt  time.Time `json:"created_at"`
}

func (Revision) TableName() string {
	return "revisions"
}

// RevisionResponse は復習APIのレスポンスDTO
type RevisionResponse struct {
	RevisionID uuid.UUID `json:"revision_id"`
	Notes      string    `json:"notes"`
	Filename   string    `json:"filename"`
	CreatedAt  time.Time `json:"created_at"`
}

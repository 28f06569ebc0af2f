package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LearningType は診断クイズで決まる学習タイプ
type LearningType string

const (
	LearningTypeUnset     LearningType = ""
	LearningTypeReading   LearningType = "Reading"
	LearningTypeWatching  LearningType = "Watching"
	LearningTypeListening LearningType = "Listening"
	LearningTypeDoing     LearningType = "Doing"
)

// AllLearningTypes は集計時の走査順 (先に出現した最大値を採用するため順序が意味を持つ)
var AllLearningTypes = []LearningType{
	LearningTypeReading,
	LearningTypeWatching,
	LearningTypeListening,
	LearningTypeDoing,
}

// LearningSpeed は要約の分量を制御するペース設定
type LearningSpeed string

const (
	SpeedSlow    LearningSpeed = "Slow"
	SpeedAverage LearningSpeed = "Average"
	SpeedFast    LearningSpeed = "Fast"
)

// ユーザーの基本情報
type User struct {
	UserID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Username      string         `gorm:"unique;not null" json:"username"`
	PasswordHash  string         `gorm:"not null" json:"-"`
	ParentContact string         `gorm:"not null" json:"-"` // 保護者の電話番号またはメールアドレス
	LearningType  LearningType   `json:"learning_type"`
	LearningSpeed LearningSpeed  `gorm:"default:Average" json:"learning_speed"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)

// RegisterRequest は新規登録APIのリクエストボディの構造体 (DTO)
type RegisterRequest struct {
	Username      string `json:"username" validate:"required,min=1,max=100"`
	Password      string `json:"password" validate:"required,min=8,max=72"`
	ParentContact string `json:"parent_contact" validate:"required,min=3,max=100"`
}

// ProfileResponse はダッシュボード表示用のユーザー情報
type ProfileResponse struct {
	UserID        uuid.UUID     `json:"user_id"`
	Username      string        `json:"username"`
	LearningType  LearningType  `json:"learning_type"`
	LearningSpeed LearningSpeed `json:"learning_speed"`
	Suggestion    string        `json:"suggestion"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ValidSpeed は自己申告された学習スピードの妥当性を確認します
func ValidSpeed(s LearningSpeed) bool {
	switch s {
	case SpeedSlow, SpeedAverage, SpeedFast:
		return true
	}
	return false
}

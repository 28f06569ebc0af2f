// internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"

	"go_5_quick_notes/internal/config"
	"go_5_quick_notes/internal/model"
	"go_5_quick_notes/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	if err != nil {
		t.Fatalf("failed to connect database for service testing: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Revision{}); err != nil {
		t.Fatalf("failed to migrate database for service testing: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "QuickNotes"
	cfg.App.MaxUploadMB = 16
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.AccessTokenTTL = 3600000000000 // 1h
	cfg.Summarizer.Timeout = 5000000000    // 5s
	return cfg
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	validReq := &model.RegisterRequest{
		Username:      "taro",
		Password:      "password123",
		ParentContact: "+818012345678",
	}

	tests := []struct {
		name      string
		req       *model.RegisterRequest
		setupMock func(m *mocks.UserRepository)
		wantErrIs error
		wantCode  string
	}{
		{
			name: "正常系: 新規登録成功 (学習タイプ未設定・スピードAverage)",
			req:  validReq,
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByUsername", mock.Anything, mock.Anything, "taro").
					Return(nil, model.ErrNotFound).Once()
				m.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Username == "taro" &&
						u.LearningType == model.LearningTypeUnset &&
						u.LearningSpeed == model.SpeedAverage &&
						u.PasswordHash != "password123"
				})).Return(nil).Once()
			},
		},
		{
			name: "異常系: ユーザー名が既に存在する",
			req:  validReq,
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByUsername", mock.Anything, mock.Anything, "taro").
					Return(&model.User{UserID: uuid.New(), Username: "taro"}, nil).Once()
			},
			wantErrIs: model.ErrConflict,
			wantCode:  "DUPLICATE_USERNAME",
		},
		{
			name: "異常系: 作成時の一意制約違反 (レースコンディション)",
			req:  validReq,
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByUsername", mock.Anything, mock.Anything, "taro").
					Return(nil, model.ErrNotFound).Once()
				m.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.User")).
					Return(model.ErrConflict).Once()
			},
			wantErrIs: model.ErrConflict,
			wantCode:  "DUPLICATE_USERNAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(mocks.UserRepository)
			tt.setupMock(mockUserRepo)
			authService := NewAuthService(db, mockUserRepo, testConfig())

			user, err := authService.Register(ctx, tt.req)

			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Detail.Code)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, "taro", user.Username)
				// bcryptで検証可能なハッシュが保存されている
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			}
			mockUserRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	storedUser := &model.User{
		UserID:       uuid.New(),
		Username:     "taro",
		PasswordHash: string(hashed),
	}

	tests := []struct {
		name      string
		req       *model.LoginRequest
		setupMock func(m *mocks.UserRepository)
		wantCode  string
	}{
		{
			name: "正常系: ログイン成功でJWTが返る",
			req:  &model.LoginRequest{Username: "taro", Password: "password123"},
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByUsername", mock.Anything, mock.Anything, "taro").
					Return(storedUser, nil).Once()
			},
		},
		{
			name: "異常系: パスワード不一致",
			req:  &model.LoginRequest{Username: "taro", Password: "wrongpassword"},
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByUsername", mock.Anything, mock.Anything, "taro").
					Return(storedUser, nil).Once()
			},
			wantCode: "AUTHENTICATION_FAILED",
		},
		{
			name: "異常系: 存在しないユーザー",
			req:  &model.LoginRequest{Username: "nobody", Password: "password123"},
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByUsername", mock.Anything, mock.Anything, "nobody").
					Return(nil, model.ErrNotFound).Once()
			},
			wantCode: "AUTHENTICATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(mocks.UserRepository)
			tt.setupMock(mockUserRepo)
			authService := NewAuthService(db, mockUserRepo, testConfig())

			resp, err := authService.Login(ctx, tt.req)

			if tt.wantCode != "" {
				require.Error(t, err)
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Detail.Code)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.NotEmpty(t, resp.AccessToken)
			}
			mockUserRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_GetProfile(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	tests := []struct {
		name           string
		user           *model.User
		wantSuggestion string
	}{
		{
			name:           "正常系: 学習タイプに応じた提案が返る",
			user:           &model.User{UserID: uuid.New(), Username: "taro", LearningType: model.LearningTypeListening, LearningSpeed: model.SpeedSlow},
			wantSuggestion: "Listen to podcasts or lectures.",
		},
		{
			name:           "正常系: 診断前はクイズを促す提案になる",
			user:           &model.User{UserID: uuid.New(), Username: "hana", LearningType: model.LearningTypeUnset, LearningSpeed: model.SpeedAverage},
			wantSuggestion: "Complete the quiz to get suggestions.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(mocks.UserRepository)
			mockUserRepo.On("FindByID", mock.Anything, mock.Anything, tt.user.UserID).
				Return(tt.user, nil).Once()
			authService := NewAuthService(db, mockUserRepo, testConfig())

			profile, err := authService.GetProfile(ctx, tt.user.UserID)

			require.NoError(t, err)
			assert.Equal(t, tt.user.Username, profile.Username)
			assert.Equal(t, tt.wantSuggestion, profile.Suggestion)
			mockUserRepo.AssertExpectations(t)
		})
	}

	t.Run("異常系: ユーザーが存在しない", func(t *testing.T) {
		unknownID := uuid.New()
		mockUserRepo := new(mocks.UserRepository)
		mockUserRepo.On("FindByID", mock.Anything, mock.Anything, unknownID).
			Return(nil, model.ErrNotFound).Once()
		authService := NewAuthService(db, mockUserRepo, testConfig())

		profile, err := authService.GetProfile(ctx, unknownID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, profile)
		mockUserRepo.AssertExpectations(t)
	})
}

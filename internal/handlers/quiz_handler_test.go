// internal/handlers/quiz_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_5_quick_notes/internal/handlers"
	"go_5_quick_notes/internal/middleware"
	"go_5_quick_notes/internal/model"
	"go_5_quick_notes/internal/service/mocks"
)

func TestQuizHandler_SubmitResult(t *testing.T) {
	testUserID := uuid.New()

	mockQuizService := mocks.NewMockQuizService(t)
	quizHandler := handlers.NewQuizHandler(mockQuizService, nil)
	router := chi.NewRouter()
	router.Use(middleware.DevUserContextMiddleware)
	router.Post("/api/v1/quiz/result", quizHandler.SubmitResult)

	validReqBody := model.SubmitQuizRequest{
		Answers: []model.QuizAnswer{
			{QuestionIndex: 0, Selected: "Reading books or articles"},
			{QuestionIndex: 1, Selected: "Taking notes while reading"},
			{QuestionIndex: 2, Selected: "Watching review videos"},
		},
		LearningSpeed: model.SpeedAverage,
	}
	expectedResult := &model.QuizResultResponse{
		LearningType:  model.LearningTypeReading,
		LearningSpeed: model.SpeedAverage,
	}

	tests := []struct {
		name           string
		userID         *uuid.UUID
		body           interface{}
		setupMock      func()
		expectedStatus int
	}{
		{
			name:   "正常系: 診断結果の送信成功",
			userID: &testUserID,
			body:   validReqBody,
			setupMock: func() {
				mockQuizService.On("Submit", mock.Anything, testUserID, &validReqBody).
					Return(expectedResult, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: 認証ヘッダーなし",
			userID:         nil,
			body:           validReqBody,
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "異常系: 回答が空",
			userID: &testUserID,
			body: model.SubmitQuizRequest{
				Answers:       []model.QuizAnswer{},
				LearningSpeed: model.SpeedAverage,
			},
			setupMock:      func() { /* バリデーションで弾かれる */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "異常系: 学習スピードが不正な値",
			userID: &testUserID,
			body: map[string]interface{}{
				"answers":        []map[string]interface{}{{"question_index": 0, "selected": "Reading books or articles"}},
				"learning_speed": "Ludicrous",
			},
			setupMock:      func() { /* バリデーションで弾かれる */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "異常系: 選択肢にない回答はサービスで拒否される",
			userID: &testUserID,
			body:   validReqBody,
			setupMock: func() {
				mockQuizService.On("Submit", mock.Anything, testUserID, &validReqBody).
					Return(nil, model.NewAppError("INVALID_ANSWER", "設問の選択肢にない回答が含まれています。", "answers", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			req := createRequest(t, "POST", "/api/v1/quiz/result", tc.body, tc.userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var got model.QuizResultResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
				assert.Equal(t, expectedResult.LearningType, got.LearningType)
				assert.Equal(t, expectedResult.LearningSpeed, got.LearningSpeed)
			}
		})
	}
}

func TestQuizHandler_GetQuestions(t *testing.T) {
	testUserID := uuid.New()

	mockQuizService := mocks.NewMockQuizService(t)
	quizHandler := handlers.NewQuizHandler(mockQuizService, nil)
	router := chi.NewRouter()
	router.Use(middleware.DevUserContextMiddleware)
	router.Get("/api/v1/quiz", quizHandler.GetQuestions)

	questions := []model.QuizQuestion{
		{
			Prompt:  "How do you prefer to learn new material?",
			Options: []string{"Reading books or articles", "Watching videos", "Listening to lectures or podcasts", "Hands-on practice"},
			Types:   []model.LearningType{model.LearningTypeReading, model.LearningTypeWatching, model.LearningTypeListening, model.LearningTypeDoing},
		},
	}

	t.Run("正常系: 設問一覧の取得", func(t *testing.T) {
		mockQuizService.On("Questions", mock.Anything).Return(questions).Once()

		req := createRequest(t, "GET", "/api/v1/quiz", nil, &testUserID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var got []model.QuizQuestion
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, questions[0].Prompt, got[0].Prompt)
		assert.Equal(t, questions[0].Options, got[0].Options)
	})

	t.Run("異常系: 認証ヘッダーなし", func(t *testing.T) {
		req := createRequest(t, "GET", "/api/v1/quiz", nil, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

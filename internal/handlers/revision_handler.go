// internal/handlers/revision_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_quick_notes/internal/middleware"
	"go_5_quick_notes/internal/model"
	"go_5_quick_notes/internal/service"
	"go_5_quick_notes/internal/webutil"
)

type RevisionHandler struct {
	service service.RevisionService
	logger  *slog.Logger
}

func NewRevisionHandler(s service.RevisionService, logger *slog.Logger) *RevisionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RevisionHandler{
		service: s,
		logger:  logger,
	}
}

// GetRandom は復習用にランダムな要約を1件返すハンドラ
func (h *RevisionHandler) GetRandom(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetRandom"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	revision, err := h.service.PickRandom(r.Context(), userID)
	if err != nil {
		// 復習対象なしは正常系に近いので Warn 止まり
		logger.Warn("No revision available or lookup failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, revision, logger)
}

// NotifyDone は復習完了を保護者に通知するハンドラ
func (h *RevisionHandler) NotifyDone(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "NotifyDone"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	if err := h.service.NotifyRevisionDone(r.Context(), userID); err != nil {
		logger.Error("Error sending revision done notification", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Revision done notification accepted")
	webutil.RespondWithJSON(w, http.StatusAccepted, map[string]string{"message": "通知を送信しました。"}, logger)
}

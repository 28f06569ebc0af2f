// internal/handlers/upload_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_quick_notes/internal/config"
	"go_5_quick_notes/internal/middleware"
	"go_5_quick_notes/internal/model"
	"go_5_quick_notes/internal/service"
	"go_5_quick_notes/internal/webutil"
)

type UploadHandler struct {
	service service.NotesService
	cfg     *config.Config
	logger  *slog.Logger
}

func NewUploadHandler(s service.NotesService, cfg *config.Config, logger *slog.Logger) *UploadHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadHandler{
		service: s,
		cfg:     cfg,
		logger:  logger,
	}
}

// Upload は学習資料を受け取りクイックノートを生成するハンドラ
// multipart/form-data の "file" フィールドを読み取ります
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Upload"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	maxBytes := h.cfg.App.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		logger.Warn("Failed to parse multipart form", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_UPLOAD", "ファイルのアップロード形式が正しくないか、サイズ上限を超えています。", "file", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		logger.Warn("No file part in upload request", slog.String("error", err.Error()))
		appErr := model.NewAppError("MISSING_FILE", "ファイルが選択されていません。", "file", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		logger.Warn("Upload request with empty filename")
		appErr := model.NewAppError("MISSING_FILE", "ファイルが選択されていません。", "file", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.GenerateFromUpload(r.Context(), userID, header.Filename, file)
	if err != nil {
		logger.Error("Error generating quick notes in service", slog.Any("error", err), slog.String("filename", header.Filename))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Upload processed successfully", slog.String("filename", header.Filename))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

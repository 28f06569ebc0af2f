package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go_5_quick_notes/internal/config"
	"go_5_quick_notes/internal/extract"
	"go_5_quick_notes/internal/middleware"
	"go_5_quick_notes/internal/model"
	"go_5_quick_notes/internal/repository"
	"go_5_quick_notes/internal/retry"
	"go_5_quick_notes/internal/summarizer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// アップロードを受け付ける拡張子
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".pptx": true,
	".txt":  true,
}

type NotesService interface {
	GenerateFromUpload(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*model.UploadResponse, error)
}

type notesService struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	revisionRepo repository.RevisionRepository
	extractor    extract.Extractor
	summarizer   summarizer.Summarizer
	noteSink     NoteSink
	cfg          *config.Config
}

func NewNotesService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	revisionRepo repository.RevisionRepository,
	extractor extract.Extractor,
	sum summarizer.Summarizer,
	noteSink NoteSink,
	cfg *config.Config,
) NotesService {
	return &notesService{
		db:           db,
		userRepo:     userRepo,
		revisionRepo: revisionRepo,
		extractor:    extractor,
		summarizer:   sum,
		noteSink:     noteSink,
		cfg:          cfg,
	}
}

// GenerateFromUpload はアップロードされたファイルからクイックノートを生成します。
// 拡張子の検証は保存・抽出より前に行い、許可されていないファイルは一切ディスクに書きません。
// 要約の保存までが本処理で、外部ノートサービスへの連携はベストエフォートです。
func (s *notesService) GenerateFromUpload(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*model.UploadResponse, error) {
	logger := middleware.GetLogger(ctx)

	safeName, err := sanitizeFilename(filename)
	if err != nil {
		return nil, model.NewAppError("INVALID_FILENAME", "ファイル名が不正です。", "file", model.ErrInvalidInput)
	}

	ext := strings.ToLower(filepath.Ext(safeName))
	if !allowedExtensions[ext] {
		logger.Warn("Rejected upload with unsupported extension", "filename", safeName, "ext", ext)
		return nil, model.NewAppError("UNSUPPORTED_FILE_TYPE", "対応していないファイル形式です (pdf / pptx / txt のみ)。", "file", model.ErrUnsupportedFileType)
	}

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error finding user for upload", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	// ユーザーごとのフォルダに保存
	filePath, err := s.saveFile(user.Username, safeName, file)
	if err != nil {
		logger.Error("Failed to save uploaded file", "error", err, "filename", safeName)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ファイルの保存に失敗しました。", "", err)
	}

	text, err := s.extractor.Extract(filePath, ext)
	if err != nil {
		logger.Error("Failed to extract text from upload", "error", err, "file_path", filePath)
		if errors.Is(err, model.ErrUnsupportedFileType) {
			return nil, model.NewAppError("UNSUPPORTED_FILE_TYPE", "対応していないファイル形式です (pdf / pptx / txt のみ)。", "file", model.ErrUnsupportedFileType)
		}
		return nil, model.NewAppError("EXTRACTION_FAILED", "ファイルからテキストを抽出できませんでした。", "file", err)
	}

	minWords, maxWords, err := summarizer.PlanLength(summarizer.CountWords(text), user.LearningSpeed)
	if err != nil {
		logger.Warn("Upload text too short to summarize", "file_path", filePath)
		return nil, model.NewAppError("TEXT_TOO_SHORT", "テキストが短すぎて要約できません (10語以上必要です)。", "file", model.ErrTextTooShort)
	}

	summary, err := s.summarize(ctx, text, minWords, maxWords)
	if err != nil {
		logger.Error("Summarization failed", "error", err, "file_path", filePath)
		return nil, model.NewAppError("SUMMARIZATION_FAILED", "要約の生成に失敗しました。時間をおいて再度お試しください。", "", err)
	}

	revision := &model.Revision{
		RevisionID: uuid.New(),
		UserID:     userID,
		Content:    summary,
		FilePath:   filePath,
	}
	if err := s.revisionRepo.Create(ctx, s.db, revision); err != nil {
		logger.Error("Failed to save revision", "error", err, "user_id", userID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "要約の保存に失敗しました。", "", err)
	}

	resp := &model.UploadResponse{
		Message: "File uploaded and processed successfully!",
		Summary: summary,
	}

	// ノートサービスへの連携はベストエフォート。失敗は警告として返すのみ。
	if err := s.noteSink.Publish(ctx, user.Username, summary); err != nil {
		logger.Warn("Failed to publish notes to note sink", "error", err, "user_id", userID.String())
		resp.Warning = "外部ノートサービスへの連携に失敗しました。要約自体は保存されています。"
	}

	return resp, nil
}

// saveFile はアップロード内容を uploadDir/<username>/<filename> に書き込み、保存先パスを返します
func (s *notesService) saveFile(username, filename string, file io.Reader) (string, error) {
	userDir := filepath.Join(s.cfg.App.UploadDir, username)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filePath := filepath.Join(userDir, filename)
	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return filePath, nil
}

// summarize はタイムアウトと1回のリトライ付きで要約バックエンドを呼びます
func (s *notesService) summarize(ctx context.Context, text string, minWords, maxWords int) (string, error) {
	sumCtx, cancel := context.WithTimeout(ctx, s.cfg.Summarizer.Timeout)
	defer cancel()

	var summary string
	err := retry.Do(sumCtx, retry.DefaultConfig(), func(ctx context.Context) error {
		var err error
		summary, err = s.summarizer.Summarize(ctx, text, minWords, maxWords)
		return err
	})
	return summary, err
}

// sanitizeFilename はパス区切りを取り除いたファイル名だけを残します
func sanitizeFilename(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("invalid filename: %q", name)
	}
	return base, nil
}

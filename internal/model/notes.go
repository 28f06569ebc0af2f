// internal/model/notes.go
package model

// UploadResponse はアップロード成功時のレスポンス
// Warning はノート連携など副次処理の失敗を通知するためのフィールド (要約自体は保存済み)
type UploadResponse struct {
	Message string `json:"message"`
	Summary string `json:"summary"`
	Warning string `json:"warning,omitempty"`
}

package models

import "encoding/json"

// ============================================================
// User Model
// ============================================================

type User struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// ============================================================
// Saved Scene Model
// ============================================================

// SavedScene — скомпилированная сцена, сохраненная пользователем.
// Scene хранится как сырой JSON контракта grapher-сервиса.
type SavedScene struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Prompt    string          `json:"prompt,omitempty"`
	Scene     json.RawMessage `json:"scene"`
	CreatedAt string          `json:"created_at"`
}

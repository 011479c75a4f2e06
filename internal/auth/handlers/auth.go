package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"graph-calculator/internal/auth/models"
	"graph-calculator/internal/auth/repository"
	"graph-calculator/internal/auth/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Auth Handler
// ============================================================

type AuthHandler struct {
	repo     *repository.Repository
	sessions *service.SessionManager
}

func NewAuthHandler(repo *repository.Repository, sessions *service.SessionManager) *AuthHandler {
	return &AuthHandler{
		repo:     repo,
		sessions: sessions,
	}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type saveSceneRequest struct {
	Name   string          `json:"name"`
	Prompt string          `json:"prompt"`
	Scene  json.RawMessage `json:"scene"`
}

// Login выдает простой токен по паре login/password.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	log.Printf("[AUTH] Login request")

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	var req loginRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	if req.Login == "" || req.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "login and password required"})
	}

	user, err := h.repo.GetByCredentials(c.Context(), req.Login, req.Password)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	token := h.sessions.Issue(user.ID)

	return c.JSON(loginResponse{
		Token: token,
		User:  mapUser(user),
	})
}

// Logout снимает токен сессии.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		h.sessions.Revoke(strings.TrimPrefix(auth, "Bearer "))
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// GetUser возвращает данные пользователя.
func (h *AuthHandler) GetUser(c fiber.Ctx) error {
	userID, ok := h.authorize(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	targetID := c.Params("id")
	if targetID == "" || targetID != userID {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}

	user, err := h.repo.GetByID(c.Context(), targetID)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}

	return c.JSON(mapUser(user))
}

// ============================================================
// Scene Handlers
// ============================================================

// SaveScene сохраняет скомпилированную сцену пользователя.
func (h *AuthHandler) SaveScene(c fiber.Ctx) error {
	userID, ok := h.authorizeParam(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req saveSceneRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Name == "" || len(req.Scene) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name and scene required"})
	}

	id, err := h.repo.SaveScene(c.Context(), userID, req.Name, req.Prompt, req.Scene)
	if err != nil {
		log.Printf("[AUTH] Save scene error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save scene"})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListScenes возвращает метаданные сохраненных сцен пользователя.
func (h *AuthHandler) ListScenes(c fiber.Ctx) error {
	userID, ok := h.authorizeParam(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	scenes, err := h.repo.ListScenes(c.Context(), userID)
	if err != nil {
		log.Printf("[AUTH] List scenes error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list scenes"})
	}

	return c.JSON(scenes)
}

// GetScene отдает сохраненную сцену целиком.
func (h *AuthHandler) GetScene(c fiber.Ctx) error {
	userID, ok := h.authorizeParam(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	scene, err := h.repo.GetScene(c.Context(), userID, c.Params("sceneId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "scene not found"})
		}
		log.Printf("[AUTH] Get scene error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load scene"})
	}

	return c.JSON(scene)
}

// DeleteScene удаляет сохраненную сцену.
func (h *AuthHandler) DeleteScene(c fiber.Ctx) error {
	userID, ok := h.authorizeParam(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := h.repo.DeleteScene(c.Context(), userID, c.Params("sceneId")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "scene not found"})
		}
		log.Printf("[AUTH] Delete scene error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete scene"})
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

// ============================================================
// Helpers
// ============================================================

func (h *AuthHandler) authorize(c fiber.Ctx) (string, bool) {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	userID, ok := h.sessions.Resolve(token)
	return userID, ok
}

// authorizeParam дополнительно сверяет :id в пути с владельцем токена.
func (h *AuthHandler) authorizeParam(c fiber.Ctx) (string, bool) {
	userID, ok := h.authorize(c)
	if !ok {
		return "", false
	}
	if target := c.Params("id"); target != "" && target != userID {
		return "", false
	}
	return userID, true
}

func mapUser(u *models.User) userPayload {
	return userPayload{
		ID:        u.ID,
		Login:     u.Login,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

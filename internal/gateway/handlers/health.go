package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// HealthHandler знает адреса нижестоящих сервисов.
type HealthHandler struct {
	GrapherURL string
	AuthURL    string
}

// ReadinessProbe проверяет доступность grapher и auth.
func (h *HealthHandler) ReadinessProbe(c fiber.Ctx) error {
	client := &http.Client{Timeout: 2 * time.Second}

	services := fiber.Map{}
	ready := true
	for name, base := range map[string]string{
		"grapher": h.GrapherURL,
		"auth":    h.AuthURL,
	} {
		resp, err := client.Get(base + "/health/live")
		if err != nil || resp.StatusCode != http.StatusOK {
			services[name] = "down"
			ready = false
		} else {
			services[name] = "up"
		}
		if resp != nil {
			resp.Body.Close()
		}
	}

	status := fiber.Map{"status": "ready", "services": services}
	if !ready {
		status["status"] = "degraded"
		return c.Status(http.StatusServiceUnavailable).JSON(status)
	}
	return c.JSON(status)
}

// StartupProbe проверяет, что приложение успешно запустилось
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}

package api

import (
	"github.com/gofiber/fiber/v2"
)

// RootResponse is the body of GET /.
type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleRoot reports that the service is up.
func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(RootResponse{
		Status:  "online",
		Message: "ResearchPilot core is running.",
	})
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

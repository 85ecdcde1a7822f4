package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	apisearch "github.com/papercomputeco/researchpilot/api/search"
)

// handleMemorySearch handles GET /v1/memory/search requests.
// Query parameters:
//   - query (required): the text to recall facts for
//   - top_k (optional, default 5): number of facts to return
func (s *Server) handleMemorySearch(c *fiber.Ctx) error {
	if s.config.Memory == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "memory is not configured",
		})
	}

	topK := apisearch.DefaultTopK
	if topKStr := c.Query("top_k"); topKStr != "" {
		parsed, err := strconv.Atoi(topKStr)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "top_k must be a positive integer",
			})
		}
		topK = parsed
	}

	output, err := apisearch.Search(c.UserContext(), c.Query("query"), topK, s.config.Memory, s.logger)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, apisearch.ErrQueryRequired) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(output)
}

package api

import (
	"bufio"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/researchpilot/pkg/mission"
	"github.com/papercomputeco/researchpilot/pkg/sse"
)

// ErrOrchestratorUnavailable is the message streamed when no orchestrator
// could be built at startup.
const ErrOrchestratorUnavailable = "Orchestrator not initialized"

// handleResearch handles GET /research?topic=T. It streams one SSE data
// event per mission event and ends after the terminal event. A write
// failure means the client went away; the loop stops and so does the
// mission.
func (s *Server) handleResearch(c *fiber.Ctx) error {
	topic := c.Query("topic")
	if topic == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "topic parameter is required",
		})
	}

	for k, v := range sse.Headers {
		c.Set(k, v)
	}

	orchestrator := s.config.Orchestrator
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		out := sse.NewWriter(w)

		if orchestrator == nil {
			s.logger.Warn("research requested without an orchestrator", "topic", topic)
			_ = out.WriteJSON(mission.Failure{Message: ErrOrchestratorUnavailable})
			return
		}

		for event := range orchestrator.Run(s.ctx, topic) {
			if err := out.WriteJSON(event); err != nil {
				s.logger.Info("research client disconnected", "topic", topic, "error", err)
				return
			}
		}
	})

	return nil
}

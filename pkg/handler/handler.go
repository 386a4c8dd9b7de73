// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-beat-party/pkg/boost"
	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/game"
	"github.com/AccelByte/extend-beat-party/pkg/state"
)

// errRejected is reported when the session refuses a transition in its current state.
var errRejected = errors.New("transition not allowed in the current state")

// Handler serves the presentation layer over HTTP.
type Handler struct {
	engine *game.Engine
	flow   *boost.Flow
	health *state.HealthChecker
}

func New(engine *game.Engine, flow *boost.Flow, health *state.HealthChecker) *Handler {
	return &Handler{engine: engine, flow: flow, health: health}
}

// Register mounts every route on router. Game routes live under /api.
func (h *Handler) Register(router fiber.Router) {
	router.Get("/healthz", h.healthz)

	api := router.Group("/api")
	h.registerSession(api.Group("/session"))
	h.registerChallenges(api.Group("/challenges"))
	h.registerCreator(api.Group("/creator"))
	h.registerProfile(api)
}

func (h *Handler) healthz(c *fiber.Ctx) error {
	if err := h.health.Check(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrEmptyImage),
		errors.Is(err, catalog.ErrUnknownImage),
		errors.Is(err, catalog.ErrIndexOutOfRange),
		errors.Is(err, catalog.ErrRoundOutOfRange),
		errors.Is(err, catalog.ErrSlotOutOfRange),
		errors.Is(err, catalog.ErrUnknownMode):
		return fiber.StatusBadRequest
	case errors.Is(err, game.ErrChallengeNotFound),
		errors.Is(err, game.ErrLevelNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, boost.ErrRewardUnavailable):
		return fiber.StatusServiceUnavailable
	case game.IsBoostRejection(err),
		errors.Is(err, boost.ErrAlreadyPending),
		errors.Is(err, boost.ErrRewardNotGranted),
		errors.Is(err, errRejected):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logrus.Errorf("request %s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

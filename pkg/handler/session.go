// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) registerSession(r fiber.Router) {
	r.Get("/", h.getSession)
	r.Post("/load/featured/:id", h.loadFeatured)
	r.Post("/load/challenge/:id", h.loadChallenge)
	r.Post("/load/custom", h.loadCustom)
	r.Post("/continue", h.transition(h.engine.Continue))
	r.Post("/start", h.transition(h.engine.StartRound))
	r.Post("/intro-done", h.transition(h.engine.EndRoundIntro))
	r.Post("/restart", h.transition(h.engine.RestartGame))
	r.Post("/menu", h.transition(h.engine.ReturnToMenu))
	r.Post("/stop", h.stop)
	r.Put("/bpm", h.setBPM)
}

func (h *Handler) getSession(c *fiber.Ctx) error {
	return c.JSON(h.engine.Session())
}

func (h *Handler) loadFeatured(c *fiber.Ctx) error {
	if err := h.engine.LoadFeatured(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(h.engine.Session())
}

func (h *Handler) loadChallenge(c *fiber.Ctx) error {
	if err := h.engine.LoadChallenge(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(h.engine.Session())
}

func (h *Handler) loadCustom(c *fiber.Ctx) error {
	h.engine.LoadCustomLevel()
	return c.JSON(h.engine.Session())
}

func (h *Handler) stop(c *fiber.Ctx) error {
	h.engine.StopGame()
	return c.JSON(h.engine.Session())
}

// transition wraps a session transition that reports whether it was allowed.
func (h *Handler) transition(fn func() bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !fn() {
			return fail(c, errRejected)
		}
		return c.JSON(h.engine.Session())
	}
}

func (h *Handler) setBPM(c *fiber.Ctx) error {
	var req struct {
		BPM int `json:"bpm"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if !h.engine.SetBPM(req.BPM) {
		return badRequest(c, "bpm must be positive")
	}
	return c.JSON(h.engine.Session())
}

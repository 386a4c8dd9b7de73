// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) registerProfile(api fiber.Router) {
	api.Get("/profile", h.getProfile)
	api.Put("/profile/language", h.setLanguage)
	api.Post("/engagement/refresh", h.refreshEngagement)
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	return c.JSON(h.engine.Stats())
}

func (h *Handler) setLanguage(c *fiber.Ctx) error {
	var req struct {
		Language string `json:"language"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	tag, err := h.engine.SetLanguage(c.UserContext(), req.Language)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"language": tag.String()})
}

func (h *Handler) refreshEngagement(c *fiber.Ctx) error {
	result, err := h.engine.RefreshEngagement(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"intervals":   result.Intervals,
		"milestones":  result.Milestones,
		"boostsReset": result.BoostsReset,
	})
}

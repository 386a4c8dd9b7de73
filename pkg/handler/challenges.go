// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/game"
)

func (h *Handler) registerChallenges(r fiber.Router) {
	r.Get("/", h.listChallenges)
	r.Get("/mine", h.ownedChallenges)
	r.Get("/featured", h.featuredLevels)
	r.Get("/boosts/pending", h.pendingBoosts)
	r.Get("/:id", h.getChallenge)
	r.Post("/:id/rate", h.rateChallenge)
	r.Post("/:id/boost", h.boostChallenge)
	r.Post("/:id/boost/queue", h.queueBoost)
}

func (h *Handler) listChallenges(c *fiber.Ctx) error {
	order := catalog.SortOrder(c.Query("sort", string(catalog.SortPlays)))
	if !order.Valid() {
		return badRequest(c, "sort must be one of plays, likes, newest")
	}
	return c.JSON(h.engine.Challenges(order))
}

func (h *Handler) ownedChallenges(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"challenges": h.engine.OwnedChallenges(),
		"stats":      h.engine.Stats(),
	})
}

func (h *Handler) featuredLevels(c *fiber.Ctx) error {
	return c.JSON(catalog.Featured())
}

func (h *Handler) getChallenge(c *fiber.Ctx) error {
	id := c.Params("id")
	ch, ok := h.engine.Challenge(id)
	if !ok {
		return fail(c, game.ErrChallengeNotFound)
	}
	return c.JSON(fiber.Map{"challenge": ch, "owned": h.engine.IsOwned(id)})
}

func (h *Handler) rateChallenge(c *fiber.Ctx) error {
	var req struct {
		Stars int `json:"stars"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	id := c.Params("id")
	if _, ok := h.engine.Challenge(id); !ok {
		return fail(c, game.ErrChallengeNotFound)
	}

	counted, err := h.engine.RateChallenge(c.UserContext(), id, req.Stars)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"counted": counted})
}

func (h *Handler) boostChallenge(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.flow.Request(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	ch, _ := h.engine.Challenge(id)
	return c.JSON(ch)
}

func (h *Handler) queueBoost(c *fiber.Ctx) error {
	if err := h.flow.Queue(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"pending": h.flow.Pending()})
}

func (h *Handler) pendingBoosts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"pending": h.flow.Pending()})
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AccelByte/extend-beat-party/pkg/catalog"
)

func (h *Handler) registerCreator(r fiber.Router) {
	r.Get("/", h.getDraft)
	r.Post("/enter", h.enterCreator)
	r.Post("/images", h.addImage)
	r.Delete("/images/:index", h.removeImage)
	r.Put("/names", h.setImageName)
	r.Put("/mode", h.setMode)
	r.Put("/slots", h.setSlot)
	r.Put("/name", h.setName)
	r.Post("/fill", h.fillSlots)
	r.Post("/save", h.saveChallenge)
	r.Post("/reset", h.resetDraft)
}

// draftView is the draft plus per-round slot completeness, indexed from round 1.
type draftView struct {
	catalog.Draft
	RoundsComplete []bool `json:"roundsComplete"`
}

func (h *Handler) currentDraft() draftView {
	d := h.engine.Draft()
	complete := make([]bool, catalog.CreatorRounds)
	for round := 1; round <= catalog.CreatorRounds; round++ {
		complete[round-1] = d.RoundComplete(round)
	}
	return draftView{Draft: d, RoundsComplete: complete}
}

func (h *Handler) getDraft(c *fiber.Ctx) error {
	return c.JSON(h.currentDraft())
}

func (h *Handler) enterCreator(c *fiber.Ctx) error {
	h.engine.EnterCreator()
	return c.JSON(h.currentDraft())
}

// draftResult answers with the updated draft, or the edit's error.
func (h *Handler) draftResult(c *fiber.Ctx, err error) error {
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(h.currentDraft())
}

func (h *Handler) addImage(c *fiber.Ctx) error {
	var req struct {
		URI string `json:"uri"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return h.draftResult(c, h.engine.AddDraftImage(req.URI))
}

func (h *Handler) removeImage(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return badRequest(c, "index must be an integer")
	}
	return h.draftResult(c, h.engine.RemoveDraftImage(index))
}

func (h *Handler) setImageName(c *fiber.Ctx) error {
	var req struct {
		URI  string `json:"uri"`
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return h.draftResult(c, h.engine.SetDraftImageName(req.URI, req.Name))
}

func (h *Handler) setMode(c *fiber.Ctx) error {
	var req struct {
		Mode catalog.CreatorMode `json:"mode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return h.draftResult(c, h.engine.SetDraftMode(req.Mode))
}

func (h *Handler) setSlot(c *fiber.Ctx) error {
	var req struct {
		Round int    `json:"round"`
		Slot  int    `json:"slot"`
		URI   string `json:"uri"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return h.draftResult(c, h.engine.SetDraftSlot(req.Round, req.Slot, req.URI))
}

func (h *Handler) setName(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	h.engine.SetDraftName(req.Name)
	return c.JSON(h.currentDraft())
}

func (h *Handler) fillSlots(c *fiber.Ctx) error {
	filled := h.engine.FillDraftSlots()
	return c.JSON(fiber.Map{"filled": filled, "draft": h.currentDraft()})
}

func (h *Handler) saveChallenge(c *fiber.Ctx) error {
	ch, err := h.engine.SaveChallenge(c.UserContext())
	if err != nil {
		// saved in memory; the profile write failed
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"challenge": ch, "error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"challenge": ch})
}

func (h *Handler) resetDraft(c *fiber.Ctx) error {
	h.engine.ResetDraft()
	return c.JSON(h.currentDraft())
}

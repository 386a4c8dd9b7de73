// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"strings"

	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/common"
)

// Kind tags where a loaded level came from.
type Kind string

const (
	KindLevel     Kind = "level"
	KindCommunity Kind = "community"
)

// Selection is a level chosen for play. Build it with Featured, Community or CustomFromDraft.
type Selection struct {
	Kind        Kind
	Level       catalog.Level
	ChallengeID string
	Layout      Layout
}

// Featured selects a built-in level. Every round draws from its image set.
func Featured(level catalog.Level) Selection {
	level = level.Clone()
	return Selection{
		Kind:   KindLevel,
		Level:  level,
		Layout: Layout{Mode: catalog.ModeRandom, Pool: level.Images},
	}
}

// Community selects a stored community challenge.
func Community(c *catalog.Challenge) Selection {
	level := c.Level.Clone()
	return Selection{
		Kind:        KindCommunity,
		Level:       level,
		ChallengeID: c.ID,
		Layout: Layout{
			Mode:    c.CreatorMode,
			Pool:    append([]string{}, c.CreatorImages...),
			Layouts: c.CreatorRoundLayouts.Clone(),
		},
	}
}

// CustomFromDraft selects the creator draft for play without saving it.
func CustomFromDraft(d catalog.Draft) Selection {
	d = d.Clone()
	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = catalog.DefaultChallengeName
	}
	return Selection{
		Kind: KindLevel,
		Level: catalog.Level{
			ID:         catalog.CustomLevelID,
			Name:       name,
			Rounds:     catalog.CreatorRounds,
			Images:     d.Images,
			ImageNames: d.ImageNames,
		},
		Layout: Layout{Mode: d.Mode, Pool: d.Images, Layouts: d.Layouts},
	}
}

// Layout derives the images of each round.
type Layout struct {
	Mode    catalog.CreatorMode
	Pool    []string
	Layouts catalog.RoundLayouts
}

// Resolve returns the GridSlots images of round.
// CUSTOM uses the round's slots with empty ones replaced by the placeholder.
// RANDOM draws uniformly with replacement from the pool; an empty pool yields placeholders.
func (l Layout) Resolve(round int, rnd common.Rand) []string {
	images := make([]string, catalog.GridSlots)

	if l.Mode == catalog.ModeCustom {
		for i, slot := range l.Layouts.Slots(round) {
			if slot == "" {
				slot = catalog.PlaceholderImage
			}
			images[i] = slot
		}
		return images
	}

	for i := range images {
		if len(l.Pool) == 0 {
			images[i] = catalog.PlaceholderImage
			continue
		}
		images[i] = l.Pool[rnd.Intn(len(l.Pool))]
	}
	return images
}

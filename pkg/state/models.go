// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"time"

	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/engagement"
)

// Profile is everything persisted for a device
type Profile struct {
	Challenges       []*catalog.Challenge `json:"challenges"`
	UserChallengeIDs []string             `json:"userChallengeIds"`
	Language         string               `json:"language"`
	Engagement       engagement.Clock     `json:"engagement"`
	LastBoostAt      time.Time            `json:"lastBoostAt"`
	TotalFire        int                  `json:"totalFire"`
}

// NewProfile returns the profile of a device that never saved anything
func NewProfile() *Profile {
	return &Profile{
		Challenges:       []*catalog.Challenge{},
		UserChallengeIDs: []string{},
		Language:         "en",
	}
}

// normalize fills nil collections left by older documents
func (p *Profile) normalize() {
	if p.Challenges == nil {
		p.Challenges = []*catalog.Challenge{}
	}
	if p.UserChallengeIDs == nil {
		p.UserChallengeIDs = []string{}
	}
	if p.Language == "" {
		p.Language = "en"
	}
}

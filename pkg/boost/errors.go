// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package boost

import "errors"

var (
	// ErrDailyCapReached indicates the challenge used all of today's boosts.
	ErrDailyCapReached = errors.New("daily boost limit reached")

	// ErrCooldownActive indicates a boost was applied too recently on any challenge.
	ErrCooldownActive = errors.New("boost cooldown active")

	// ErrRewardUnavailable indicates the reward unit never became ready or failed to present.
	ErrRewardUnavailable = errors.New("reward unavailable")

	// ErrRewardNotGranted indicates the reward unit closed without granting.
	ErrRewardNotGranted = errors.New("reward not granted")

	// ErrAlreadyPending indicates a queued boost is already waiting for the challenge.
	ErrAlreadyPending = errors.New("boost already pending")
)

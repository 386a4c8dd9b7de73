// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import "errors"

var (
	// ErrChallengeNotFound indicates no stored challenge has the requested id.
	ErrChallengeNotFound = errors.New("challenge not found")

	// ErrLevelNotFound indicates no featured level has the requested id.
	ErrLevelNotFound = errors.New("level not found")

	// ErrNotOwned indicates the challenge was not authored on this device.
	ErrNotOwned = errors.New("challenge not authored on this device")
)

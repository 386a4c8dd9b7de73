// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import "github.com/sirupsen/logrus"

// Cue is a sound effect requested by the state machine.
type Cue string

const (
	CueRoundIntro Cue = "round_intro"
	CueBeat       Cue = "beat"
	CueComplete   Cue = "complete"
)

// CuePlayer plays sound cues. Implementations must not block.
type CuePlayer interface {
	PlayCue(cue Cue)
}

// LogCuePlayer logs cues instead of playing audio.
type LogCuePlayer struct{}

func (LogCuePlayer) PlayCue(cue Cue) {
	logrus.Debugf("cue %s", cue)
}

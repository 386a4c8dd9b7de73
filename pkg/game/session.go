// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/common"
)

// State is the screen-level state of a session.
type State string

const (
	StateMenu     State = "MENU"
	StatePlaying  State = "PLAYING"
	StateResult   State = "RESULT"
	StateCreating State = "CREATING"
)

const (
	// BeatsPerRound is one beat per grid slot.
	BeatsPerRound = catalog.GridSlots
	// NotStarted is the beat value before the first beat of a round.
	NotStarted = -1
	DefaultBPM = 100
	// CompletionReward is the fire credited for finishing a playthrough.
	CompletionReward = 10
)

// Playback is what the beat driver needs to know about a session.
type Playback struct {
	Epoch  uint64
	Active bool
	BPM    int
	Round  int
	Rounds int
}

// Session is the ephemeral play state. Its methods are pure transitions;
// Engine serialises them.
type Session struct {
	Level        catalog.Level `json:"level"`
	Kind         Kind          `json:"kind,omitempty"`
	ChallengeID  string        `json:"challengeId,omitempty"`
	Loaded       bool          `json:"loaded"`
	Round        int           `json:"round"`
	Beat         int           `json:"beat"`
	BPM          int           `json:"bpm"`
	IsPlaying    bool          `json:"isPlaying"`
	IsRoundIntro bool          `json:"isRoundIntro"`
	State        State         `json:"state"`
	Fire         int           `json:"fire"`
	Epoch        uint64        `json:"epoch"`

	layout   Layout
	credited bool
}

func NewSession(bpm int) Session {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	return Session{Round: 1, Beat: NotStarted, BPM: bpm, State: StateMenu}
}

// Playback snapshots the fields the beat driver reacts to.
func (s *Session) Playback() Playback {
	return Playback{
		Epoch:  s.Epoch,
		Active: s.IsPlaying && !s.IsRoundIntro && s.State == StatePlaying,
		BPM:    s.BPM,
		Round:  s.Round,
		Rounds: s.Level.Rounds,
	}
}

// Load installs sel at round 1 and returns to the menu.
func (s *Session) Load(sel Selection, rnd common.Rand) {
	s.Level = sel.Level.Clone()
	s.Kind = sel.Kind
	s.ChallengeID = sel.ChallengeID
	s.layout = sel.Layout
	s.Loaded = true
	s.Fire = 0
	s.State = StateMenu
	s.IsPlaying = false
	s.rewind(rnd)
	s.IsRoundIntro = false
	s.Epoch++
}

// StartRound begins the current round with its intro. A finished
// playthrough is replayed through Restart or Continue instead.
func (s *Session) StartRound() bool {
	if !s.Loaded || s.State == StateResult {
		return false
	}
	s.IsPlaying = true
	s.IsRoundIntro = true
	s.Beat = NotStarted
	s.State = StatePlaying
	s.Epoch++
	return true
}

// EndRoundIntro releases the beat loop. It is the only way out of an intro.
func (s *Session) EndRoundIntro() bool {
	if !s.IsPlaying || !s.IsRoundIntro {
		return false
	}
	s.IsRoundIntro = false
	s.Epoch++
	return true
}

// NextRound advances to the following round and enters its intro.
func (s *Session) NextRound(rnd common.Rand) bool {
	if !s.Loaded || s.Round >= s.Level.Rounds {
		return false
	}
	s.Round++
	s.Level.Images = s.layout.Resolve(s.Round, rnd)
	s.Beat = NotStarted
	s.IsRoundIntro = true
	s.Epoch++
	return true
}

// SetBeat records the beat counter without validation.
func (s *Session) SetBeat(beat int) {
	s.Beat = beat
}

// Stop abandons play and returns to the menu.
func (s *Session) Stop() {
	s.State = StateMenu
	s.IsPlaying = false
	s.IsRoundIntro = false
	s.Beat = NotStarted
	s.Epoch++
}

// Restart replays the level from round 1 immediately.
func (s *Session) Restart(rnd common.Rand) bool {
	if !s.Loaded {
		return false
	}
	s.rewind(rnd)
	s.IsPlaying = true
	s.IsRoundIntro = true
	s.State = StatePlaying
	s.Epoch++
	return true
}

// ReturnToMenu rewinds the level to round 1 and waits in the menu.
func (s *Session) ReturnToMenu(rnd common.Rand) bool {
	if !s.Loaded {
		return false
	}
	s.rewind(rnd)
	s.IsPlaying = false
	s.IsRoundIntro = false
	s.State = StateMenu
	s.Epoch++
	return true
}

// Continue is the start button: a finished level restarts, anything else starts the current round.
func (s *Session) Continue(rnd common.Rand) bool {
	if s.State == StateResult || (s.Round >= s.Level.Rounds && !s.IsPlaying) {
		return s.Restart(rnd)
	}
	return s.StartRound()
}

// Complete finishes the playthrough and credits the reward once.
// It reports whether this call completed it.
func (s *Session) Complete() bool {
	if !s.Loaded || s.credited {
		return false
	}
	s.credited = true
	s.State = StateResult
	s.IsPlaying = false
	s.IsRoundIntro = false
	s.Fire += CompletionReward
	s.Epoch++
	return true
}

// SetBPM changes the tempo; a running loop restarts at the new period.
func (s *Session) SetBPM(bpm int) bool {
	if bpm <= 0 {
		return false
	}
	s.BPM = bpm
	s.Epoch++
	return true
}

// EnterCreator stops play and switches to the creator screen.
func (s *Session) EnterCreator() {
	s.Stop()
	s.State = StateCreating
}

func (s *Session) rewind(rnd common.Rand) {
	s.Round = 1
	s.Beat = NotStarted
	s.Level.Images = s.layout.Resolve(1, rnd)
	s.credited = false
}

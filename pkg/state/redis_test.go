// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/AccelByte/extend-beat-party/pkg/catalog"
	"github.com/AccelByte/extend-beat-party/pkg/engagement"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func sampleProfile() *Profile {
	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	return &Profile{
		Challenges: []*catalog.Challenge{
			{
				Level:       catalog.Level{ID: "c-1", Name: "Party", Rounds: 5, Images: []string{"a.png"}},
				CreatorMode: catalog.ModeCustom,
				CreatorRoundLayouts: catalog.RoundLayouts{
					1: {"a.png", "a.png", "a.png", "a.png", "a.png", "a.png", "a.png", "a.png"},
				},
				PlaysCount:  1200,
				BoostsToday: 2,
				IsViral:     true,
				CreatedAt:   created,
			},
		},
		UserChallengeIDs: []string{"c-1"},
		Language:         "fr",
		Engagement:       engagement.Clock{LastRefresh: created, LastBoostReset: created},
		LastBoostAt:      created.Add(time.Minute),
		TotalFire:        30,
	}
}

func TestGetProfile_NewDevice(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	store := NewRedisStore(client, RedisStoreConfig{})
	profile, err := store.GetProfile(context.Background(), "device-new")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}

	if profile == nil {
		t.Fatal("GetProfile() returned nil profile")
	}
	if len(profile.Challenges) != 0 || len(profile.UserChallengeIDs) != 0 {
		t.Errorf("new profile should be empty: %+v", profile)
	}
	if profile.Language != "en" {
		t.Errorf("Language = %q, expected en", profile.Language)
	}
	if !profile.Engagement.LastRefresh.IsZero() {
		t.Error("new profile should have a zero engagement clock")
	}
}

func TestUpdateAndGetProfile(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{})
	expected := sampleProfile()

	if err := store.UpdateProfile(ctx, "device-1", expected); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	profile, err := store.GetProfile(ctx, "device-1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}

	if len(profile.Challenges) != 1 {
		t.Fatalf("Challenges = %d, expected 1", len(profile.Challenges))
	}
	c := profile.Challenges[0]
	if c.ID != "c-1" || c.PlaysCount != 1200 || !c.IsViral || c.CreatorMode != catalog.ModeCustom {
		t.Errorf("challenge = %+v", c)
	}
	if c.CreatorRoundLayouts[1][7] != "a.png" {
		t.Errorf("layouts = %v", c.CreatorRoundLayouts)
	}
	if profile.Language != "fr" || profile.TotalFire != 30 {
		t.Errorf("Language/TotalFire = %q/%d", profile.Language, profile.TotalFire)
	}
	if !profile.LastBoostAt.Equal(expected.LastBoostAt) {
		t.Errorf("LastBoostAt = %v, expected %v", profile.LastBoostAt, expected.LastBoostAt)
	}
	if !profile.Engagement.LastRefresh.Equal(expected.Engagement.LastRefresh) {
		t.Errorf("LastRefresh = %v, expected %v", profile.Engagement.LastRefresh, expected.Engagement.LastRefresh)
	}
}

func TestProfileDocumentShape(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{})
	if err := store.UpdateProfile(ctx, "device-1", sampleProfile()); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	data, err := client.Get(ctx, KeyPrefix+"device-1").Result()
	if err != nil {
		t.Fatalf("failed to get key from Redis: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		t.Fatalf("failed to unmarshal profile: %v", err)
	}
	for _, key := range []string{"challenges", "userChallengeIds", "language", "engagement", "lastBoostAt", "totalFire"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("profile document missing %q", key)
		}
	}
}

func TestGetProfile_Corrupt(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	client.Set(ctx, KeyPrefix+"device-bad", "{not json", DefaultTTL)

	store := NewRedisStore(client, RedisStoreConfig{})
	if _, err := store.GetProfile(ctx, "device-bad"); err == nil {
		t.Error("GetProfile() expected error for a corrupt document")
	}
}

func TestDeleteProfile(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{})
	_ = store.UpdateProfile(ctx, "device-delete", sampleProfile())

	key := store.makeKey("device-delete")
	exists, _ := client.Exists(ctx, key).Result()
	if exists != 1 {
		t.Fatal("profile should exist before deletion")
	}

	if err := store.DeleteProfile(ctx, "device-delete"); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}

	exists, _ = client.Exists(ctx, key).Result()
	if exists != 0 {
		t.Error("profile should not exist after deletion")
	}
}

func TestMakeKey(t *testing.T) {
	tests := []struct {
		name     string
		cfg      RedisStoreConfig
		expected string
	}{
		{name: "default prefix", expected: KeyPrefix + "device"},
		{name: "custom prefix", cfg: RedisStoreConfig{KeyPrefix: "test:"}, expected: "test:device"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewRedisStore(nil, tt.cfg)
			if got := store.makeKey("device"); got != tt.expected {
				t.Errorf("makeKey() = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestUpdateProfile_TTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{TTL: time.Hour})

	if err := store.UpdateProfile(ctx, "device-ttl", NewProfile()); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	ttl, err := client.TTL(ctx, store.makeKey("device-ttl")).Result()
	if err != nil {
		t.Fatalf("failed to get TTL: %v", err)
	}
	// Allow 1 second tolerance for test execution time
	if ttl < time.Hour-time.Second || ttl > time.Hour {
		t.Errorf("TTL = %v, expected approximately %v", ttl, time.Hour)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	profile, err := store.GetProfile(ctx, "device")
	if err != nil || len(profile.Challenges) != 0 {
		t.Fatalf("GetProfile() = %+v, %v", profile, err)
	}

	saved := sampleProfile()
	if err := store.UpdateProfile(ctx, "device", saved); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	saved.Challenges[0].PlaysCount = 0

	profile, err = store.GetProfile(ctx, "device")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if profile.Challenges[0].PlaysCount != 1200 {
		t.Errorf("PlaysCount = %d, store must not alias caller data", profile.Challenges[0].PlaysCount)
	}

	if err := store.DeleteProfile(ctx, "device"); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}
	profile, _ = store.GetProfile(ctx, "device")
	if len(profile.Challenges) != 0 {
		t.Error("profile should be gone after deletion")
	}
}

func TestHealthChecker(t *testing.T) {
	client, mr := setupTestRedis(t)

	checker := NewHealthChecker(client)
	if err := checker.Check(context.Background()); err != nil {
		t.Errorf("Check() with Redis up error = %v", err)
	}

	mr.Close()
	if err := checker.Check(context.Background()); err == nil {
		t.Error("Check() with Redis down should fail")
	}

	if err := NewHealthChecker(nil).Check(context.Background()); err != nil {
		t.Errorf("Check() without a client error = %v", err)
	}
}

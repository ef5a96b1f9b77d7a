package service

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/pkg/consts"
	"context"
	"errors"
	"testing"
)

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name                string
		view, like, reviews int64
		rating              float64
		want                float64
	}{
		{"documented example", 100, 10, 5, 4.5, 68.0},
		{"views only rounds to one decimal", 7, 0, 0, 0, 0.7},
		{"zero", 0, 0, 0, 0, 0},
		{"single view", 1, 0, 0, 0, 0.1},
		{"half views", 15, 0, 0, 0, 1.5},
		{"likes and reviews", 0, 1, 1, 5, 25},
		{"fractional rating", 3, 0, 1, 3.25, 15.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateScore(tt.view, tt.like, tt.reviews, tt.rating); got != tt.want {
				t.Errorf("CalculateScore(%d, %d, %d, %v) = %v, want %v", tt.view, tt.like, tt.reviews, tt.rating, got, tt.want)
			}
		})
	}
}

func TestCalculateScoreMonotonic(t *testing.T) {
	bases := []struct {
		view, like, review int64
		rating             float64
	}{
		{0, 0, 0, 0},
		{4, 0, 0, 0},
		{95, 3, 2, 3.5},
		{1234, 56, 78, 4.9},
	}
	for _, b := range bases {
		base := CalculateScore(b.view, b.like, b.review, b.rating)
		for step := int64(1); step <= 15; step++ {
			if got := CalculateScore(b.view+step, b.like, b.review, b.rating); got < base {
				t.Errorf("more views decreased score: %v < %v", got, base)
			}
			if got := CalculateScore(b.view, b.like+step, b.review, b.rating); got < base {
				t.Errorf("more likes decreased score: %v < %v", got, base)
			}
			if got := CalculateScore(b.view, b.like, b.review+step, b.rating); got < base {
				t.Errorf("more reviews decreased score: %v < %v", got, base)
			}
		}
		for r := b.rating; r <= 5; r += 0.05 {
			if got := CalculateScore(b.view, b.like, b.review, r); got < base {
				t.Errorf("higher rating %v decreased score: %v < %v", r, got, base)
			}
		}
	}
}

func TestPreviewScore(t *testing.T) {
	svc := NewScoreService(nil, nil, nil)
	ctx := context.Background()

	res, err := svc.PreviewScore(ctx, &dto.ScorePreviewDTO{ViewCount: 7})
	if err != nil {
		t.Fatalf("PreviewScore() error = %v", err)
	}
	if res.Score != 0.7 {
		t.Errorf("PreviewScore() = %v, want 0.7", res.Score)
	}

	invalid := []*dto.ScorePreviewDTO{
		{ViewCount: -1},
		{LikeCount: -1},
		{ReviewCount: -2},
		{Rating: 5.5},
		{Rating: -0.1},
	}
	for _, req := range invalid {
		if _, err := svc.PreviewScore(ctx, req); !errors.Is(err, ErrParamInvalid) {
			t.Errorf("PreviewScore(%+v) error = %v, want ErrParamInvalid", req, err)
		}
	}
}

func TestUpdateScore(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	s := newServices(t, db, nil)
	ctx := context.Background()

	place := createPlace(t, db, "100", 12, withStats(100, 10, 5, 4.5, 0))

	stats, err := s.score.UpdateScore(ctx, place.ID)
	if err != nil {
		t.Fatalf("UpdateScore() error = %v", err)
	}
	if stats.Score != 68.0 {
		t.Errorf("returned score = %v, want 68", stats.Score)
	}
	if got := reloadPlace(t, db, place.ID).Score; got != 68.0 {
		t.Errorf("persisted score = %v, want 68", got)
	}
	if !s.cache.isMember(consts.PlaceDirtyKey, place.ID) {
		t.Error("place should be marked dirty after score update")
	}

	if _, err := s.score.UpdateScore(ctx, 9999); !errors.Is(err, ErrPlaceNotFound) {
		t.Errorf("UpdateScore(missing) error = %v, want ErrPlaceNotFound", err)
	}
}

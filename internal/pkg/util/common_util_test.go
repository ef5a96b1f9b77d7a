package util

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name             string
		page, size       int
		wantPage, wantSz int
		wantOK           bool
	}{
		{"default size", 0, 0, 0, 20, true},
		{"keeps size", 3, 15, 3, 15, true},
		{"caps size", 1, 500, 1, 100, true},
		{"negative page", -1, 10, 0, 0, false},
		{"negative size", 0, -5, 0, 0, false},
		{"last safe page", math.MaxInt / 20, 20, math.MaxInt / 20, 20, true},
		{"offset overflow", math.MaxInt/20 + 1, 20, 0, 0, false},
		{"overflow after default size", math.MaxInt/20 + 1, 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size, ok := NormalizePage(tt.page, tt.size)
			if page != tt.wantPage || size != tt.wantSz || ok != tt.wantOK {
				t.Errorf("NormalizePage(%d, %d) = (%d, %d, %v), want (%d, %d, %v)",
					tt.page, tt.size, page, size, ok, tt.wantPage, tt.wantSz, tt.wantOK)
			}
		})
	}
}

func TestUniqueNonEmpty(t *testing.T) {
	got := UniqueNonEmpty([]string{" 강남구", "", "서초구", "강남구", "  "})
	want := []string{"강남구", "서초구"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueNonEmpty() = %v, want %v", got, want)
	}
}

func TestGetMidnight(t *testing.T) {
	in := time.Date(2024, 5, 17, 13, 45, 12, 99, time.UTC)
	want := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	if got := GetMidnight(in); !got.Equal(want) {
		t.Errorf("GetMidnight() = %v, want %v", got, want)
	}
}

func TestValidateDTO(t *testing.T) {
	type req struct {
		Name string `validate:"required"`
		Size int    `validate:"min=0"`
	}
	if err := ValidateDTO(&req{Name: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := ValidateDTO(&req{Size: -1})
	var pe *ParamError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParamError, got %v", err)
	}
	if pe.Field != "Name" || pe.Rule != "required" {
		t.Errorf("first failure = %s/%s, want Name/required", pe.Field, pe.Rule)
	}
}

func TestParseIDs(t *testing.T) {
	got := ParseIDs([]string{"3", "x", "0", "17", ""})
	if !reflect.DeepEqual(got, []uint64{3, 17}) {
		t.Errorf("ParseIDs = %v", got)
	}
}

func TestParseCode(t *testing.T) {
	if ParseCode(" 23 ") != 23 || ParseCode("") != 0 || ParseCode("A1") != 0 {
		t.Error("ParseCode mismatch")
	}
}

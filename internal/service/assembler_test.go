package service

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/model"
	"reflect"
	"testing"
	"time"
)

func TestToPlaceDTO(t *testing.T) {
	regionID, wardID := uint64(1), uint64(7)
	place := &model.Place{
		ID:            3,
		ContentID:     "264337",
		ContentTypeID: 12,
		Title:         "경복궁",
		Addr1:         "서울특별시 종로구 사직로 161",
		Addr2:         "(세종로)",
		ZipCode:       "03045",
		Tel:           "02-3700-3900",
		FirstImage:    "http://tong.visitkorea.or.kr/a.jpg",
		Cat1: "A02",
		Cat2:          "A0201",
		Cat3:          "A02010100",
		MapX: "126.9769930325",
		MapY:          " 37.5788222356 ",
		RegionID:      &regionID,
		WardID:        &wardID,
		ViewCount: 100,
		LikeCount:     10,
		ReviewCount:   5,
		Rating:        4.5,
		Score:         68,
		Region:        &model.Region{ID: regionID, Code: 1, Name: "서울"},
		Ward:          &model.Ward{ID: wardID, RegionID: regionID, Code: 23, Name: "종로구"},
	}

	out := ToPlaceDTO(place)
	want := dto.PlaceDTO{
		ID: 3, ContentID: "264337", ContentTypeID: 12, Title: "경복궁",
		Addr1: "서울특별시 종로구 사직로 161", Addr2: "(세종로)", ZipCode: "03045", Tel: "02-3700-3900",
		FirstImage: "http://tong.visitkorea.or.kr/a.jpg",
		MapX: "126.9769930325", MapY: " 37.5788222356 ",
		Cat1: "A02", Cat2: "A0201", Cat3: "A02010100",
		ViewCount: 100, LikeCount: 10, ReviewCount: 5, Rating: 4.5, Score: 68,
	}
	got := *out
	got.Latitude, got.Longitude = nil, nil
	got.RegionName, got.RegionCode, got.WardName, got.WardCode = nil, nil, nil, nil
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scalar fields not copied:\n got %+v\nwant %+v", got, want)
	}
	if out.IsLiked != nil {
		t.Errorf("is_liked should stay unset, got %v", *out.IsLiked)
	}
	if out.RegionName == nil || *out.RegionName != "서울" || *out.RegionCode != 1 {
		t.Errorf("region not inlined: %+v", out)
	}
	if out.WardName == nil || *out.WardName != "종로구" || *out.WardCode != 23 {
		t.Errorf("ward not inlined: %+v", out)
	}
	if out.Latitude == nil || *out.Latitude != 37.5788222356 || *out.Longitude != 126.9769930325 {
		t.Errorf("coordinates not parsed: lat=%v lng=%v", out.Latitude, out.Longitude)
	}
}

func TestToPlaceDTOWithoutReferences(t *testing.T) {
	out := ToPlaceDTO(&model.Place{ContentID: "1", MapX: "", MapY: "abc"})
	if out.RegionName != nil || out.RegionCode != nil || out.WardName != nil || out.WardCode != nil {
		t.Errorf("expected null region/ward, got %+v", out)
	}
	if out.Latitude != nil || out.Longitude != nil {
		t.Error("unparsable coordinates should be null")
	}
	if ToPlaceDTO(nil) != nil {
		t.Error("ToPlaceDTO(nil) should be nil")
	}
}

func TestToReviewDTO(t *testing.T) {
	now := time.Now()
	out := ToReviewDTO(&model.Review{
		ID: 9, PlaceID: 3, UserID: 2, Rating: 4, Content: "좋아요",
		CreatedAt: now, UpdatedAt: now,
		User: model.User{ID: 2, Nickname: "여행자"},
	})
	if !out.CreatedAt.Equal(now) || !out.UpdatedAt.Equal(now) {
		t.Errorf("created_at/updated_at = %v/%v, want %v", out.CreatedAt, out.UpdatedAt, now)
	}
	got := *out
	got.CreatedAt, got.UpdatedAt = time.Time{}, time.Time{}
	want := dto.ReviewDTO{ID: 9, PlaceID: 3, UserID: 2, Nickname: "여행자", Rating: 4, Content: "좋아요"}
	if got != want {
		t.Errorf("ToReviewDTO() =\n %+v\nwant %+v", got, want)
	}
	if got := ToReviewDTOs(nil); got == nil || len(got) != 0 {
		t.Errorf("ToReviewDTOs(nil) = %v, want empty slice", got)
	}
}

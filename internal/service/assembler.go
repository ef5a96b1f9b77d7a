package service

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/model"
	log "log/slog"

	"github.com/jinzhu/copier"
)

// ToPlaceDTO 只读取已加载的 Region/Ward，不触发额外查询
func ToPlaceDTO(place *model.Place) *dto.PlaceDTO {
	if place == nil {
		return nil
	}
	out := &dto.PlaceDTO{}
	if err := copier.Copy(out, place); err != nil {
		log.Error("copy place dto failed", "content_id", place.ContentID, "err", err)
	}

	if lat, lng, ok := place.Coordinates(); ok {
		out.Latitude = &lat
		out.Longitude = &lng
	}
	if place.RegionID != nil && place.Region != nil && place.Region.ID != 0 {
		name, code := place.Region.Name, place.Region.Code
		out.RegionName = &name
		out.RegionCode = &code
	}
	if place.WardID != nil && place.Ward != nil && place.Ward.ID != 0 {
		name, code := place.Ward.Name, place.Ward.Code
		out.WardName = &name
		out.WardCode = &code
	}
	return out
}

func ToPlaceDTOs(places []*model.Place) []*dto.PlaceDTO {
	out := make([]*dto.PlaceDTO, 0, len(places))
	for _, place := range places {
		out = append(out, ToPlaceDTO(place))
	}
	return out
}

func ToReviewDTO(review *model.Review) *dto.ReviewDTO {
	if review == nil {
		return nil
	}
	out := &dto.ReviewDTO{}
	if err := copier.Copy(out, review); err != nil {
		log.Error("copy review dto failed", "review_id", review.ID, "err", err)
	}
	out.Nickname = review.User.Nickname
	return out
}

func ToReviewDTOs(reviews []*model.Review) []*dto.ReviewDTO {
	out := make([]*dto.ReviewDTO, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, ToReviewDTO(review))
	}
	return out
}

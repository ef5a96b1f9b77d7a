package dto

type ThemeDTO struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

type RegionDTO struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

type WardDTO struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

type CategoryDTO struct {
	Cat1Code string `json:"cat1_code"`
	Cat1Name string `json:"cat1_name"`
	Cat2Code string `json:"cat2_code"`
	Cat2Name string `json:"cat2_name"`
	Cat3Code string `json:"cat3_code"`
	Cat3Name string `json:"cat3_name"`
}

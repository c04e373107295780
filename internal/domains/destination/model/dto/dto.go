package dto

import (
	"tripplanner/internal/domains/destination/model"
)

type DestinationResponse struct {
	Name     string   `json:"name"`
	Country  string   `json:"country"`
	Title    string   `json:"title"`
	BestTime string   `json:"bestTime"`
	MustSee  []string `json:"mustSee"`
	Extras   Extras   `json:"extras"`
}

type Extras struct {
	Label string   `json:"label"`
	Items []string `json:"items"`
}

func (r *DestinationResponse) FromModel(model model.Destination) {
	r.Name = model.Name
	r.Country = model.Country
	r.Title = model.Flag + " " + model.Name + ", " + model.Country
	r.BestTime = model.BestTime
	r.MustSee = model.MustSee
	r.Extras = Extras{Label: model.ExtraName, Items: model.Extras}
}

type GetDestinationsResponse struct {
	Destinations []DestinationResponse `json:"destinations"`
}

func (r *GetDestinationsResponse) FromModels(models []model.Destination) {
	r.Destinations = make([]DestinationResponse, len(models))
	for i, mod := range models {
		r.Destinations[i].FromModel(mod)
	}
}

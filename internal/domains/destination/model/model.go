package model

const (
	EntityName = "destination"
)

// Destination is a travel guide entry. Extras holds the labelled
// "Local Cuisine", "Activities" or "Experiences" notes of each place.
type Destination struct {
	Name      string   `json:"name"`
	Country   string   `json:"country"`
	Flag      string   `json:"flag"`
	BestTime  string   `json:"bestTime"`
	MustSee   []string `json:"mustSee"`
	ExtraName string   `json:"extraName"`
	Extras    []string `json:"extras"`
}

package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"tripplanner/internal/domains/destination/model"
)

//go:embed destinations.json
var destinationsData []byte

type catalogue struct {
	Destinations []model.Destination `json:"destinations"`
}

type Destination interface {
	GetAll() []model.Destination
	// Get looks a destination up by name, ignoring case.
	Get(name string) (model.Destination, bool)
}

type repositoryImpl struct {
	destinations []model.Destination
}

// New decodes the embedded catalogue.
func New() (Destination, error) {
	var data catalogue

	if err := json.Unmarshal(destinationsData, &data); err != nil {
		log.Err(err).Msg("Failed to decode embedded destinations")

		return nil, fmt.Errorf("failed to decode destinations: %w", err)
	}

	log.Info().Int("destinations", len(data.Destinations)).Msg("Successfully loaded embedded destinations")

	return &repositoryImpl{destinations: data.Destinations}, nil
}

func (r *repositoryImpl) GetAll() []model.Destination {
	return slices.Clone(r.destinations)
}

func (r *repositoryImpl) Get(name string) (model.Destination, bool) {
	idx := slices.IndexFunc(r.destinations, func(d model.Destination) bool {
		return strings.EqualFold(d.Name, strings.TrimSpace(name))
	})

	if idx == -1 {
		return model.Destination{}, false
	}

	return r.destinations[idx], true
}

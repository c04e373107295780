package timezone

import (
	"time"

	"github.com/rs/zerolog/log"

	"tripplanner/config"
	"tripplanner/shared/constant"
)

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	appLocation = load(cfg.App.Timezone)
}

func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// Today returns the current calendar date, formatted as a travel date.
func Today() string {
	return Now().Format(constant.TravelDateFormat)
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// FromUnixMilli converts a millisecond timestamp to application time.
func FromUnixMilli(ms int64) time.Time {
	return ToAppTime(time.UnixMilli(ms))
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

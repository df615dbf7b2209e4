package port

import "context"

type WeatherProvider interface {
	// CurrentConditions returns a short plain-text weather summary for a
	// free-form location. The location is passed to the provider verbatim.
	CurrentConditions(ctx context.Context, location string) (string, error)
}

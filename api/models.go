package api

import (
	"context"

	"github.com/carlosfiori/weather-app/assets"
	"github.com/carlosfiori/weather-app/display"
)

type Querier interface {
	Submit(ctx context.Context, prev display.UIState, rawInput string) display.UIState
	Lookup(ctx context.Context, rawInput string) display.Outcome
}

type AssetLoader interface {
	Load(name string) *assets.Image
}

type WeatherResponse struct {
	City        string  `json:"city"`
	TempC       float64 `json:"temp_C"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

// Package app runs one query end to end: input validation, the weather
// lookup, icon selection and rendering into the displayed state.
package app

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/carlosfiori/weather-app/assets"
	"github.com/carlosfiori/weather-app/display"
	"github.com/carlosfiori/weather-app/icon"
	"github.com/carlosfiori/weather-app/weather"
)

type Fetcher interface {
	FetchWeather(ctx context.Context, city string) (weather.Result, error)
}

type IconLoader interface {
	Load(name string) *assets.Image
}

type App struct {
	Credential string
	Fetcher    Fetcher
	Icons      IconLoader

	mu sync.Mutex
}

func New(credential string, fetcher Fetcher, icons IconLoader) *App {
	return &App{
		Credential: credential,
		Fetcher:    fetcher,
		Icons:      icons,
	}
}

// Submit runs a query for rawInput and renders it over prev. The App keeps no
// display state; each front end owns the state it passes in.
// Concurrent callers are serialized so only one query is in flight.
func (a *App) Submit(ctx context.Context, prev display.UIState, rawInput string) display.UIState {
	return display.Render(prev, a.Lookup(ctx, rawInput))
}

// Lookup runs a query and returns its outcome without rendering it.
func (a *App) Lookup(ctx context.Context, rawInput string) display.Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.query(ctx, rawInput)
}

func (a *App) query(ctx context.Context, rawInput string) display.Outcome {
	queryID := uuid.NewString()
	tracer := otel.Tracer("weather-app")
	ctx, span := tracer.Start(ctx, "app: query")
	defer span.End()

	span.SetAttributes(attribute.String("query.id", queryID))

	city := strings.TrimSpace(rawInput)
	if city == "" {
		log.Printf("Query %s rejected: empty city", queryID)
		span.SetStatus(codes.Error, "empty input")
		return display.Failed(&weather.Failure{Reason: weather.EmptyInput})
	}
	if a.Credential == "" {
		log.Printf("Query %s rejected: OPENWEATHER_KEY not set", queryID)
		span.SetStatus(codes.Error, "missing credential")
		return display.Failed(&weather.Failure{Reason: weather.MissingCredential})
	}

	span.SetAttributes(attribute.String("city", city))
	log.Printf("Query %s: city=%s", queryID, city)

	result, err := a.Fetcher.FetchWeather(ctx, city)
	if err != nil {
		f := weather.AsFailure(err)
		log.Printf("Query %s failed: %v", queryID, f)
		span.RecordError(f)
		span.SetStatus(codes.Error, f.Reason.String())
		return display.Failed(f)
	}

	category := icon.Select(result.Description)
	ic := &display.Icon{Category: category}
	if a.Icons != nil {
		ic.Image = a.Icons.Load(category.Filename())
	}

	log.Printf("Query %s: city=%s, tempC=%.2f, icon=%s", queryID, result.City, result.TemperatureCelsius, category)
	span.SetAttributes(attribute.String("icon", category.String()))
	span.SetStatus(codes.Ok, "")
	return display.Success(result, ic)
}

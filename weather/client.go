package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultURL     = "https://api.openweathermap.org/data/2.5/weather"
	DefaultTimeout = 10 * time.Second
)

var (
	errMissingTemp        = errors.New("main.temp missing")
	errMissingDescription = errors.New("weather[0].description missing")
	errMissingName        = errors.New("name missing")
)

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient HTTPClient
}

func NewClient(apiKey, baseURL string, httpClient HTTPClient) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: httpClient,
	}
}

// NewHTTPClient returns the client used for weather queries: bounded by
// DefaultTimeout and instrumented so the outbound GET carries trace context.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// FetchWeather issues a single GET for city. Any returned error is a *Failure.
// The caller is expected to have checked that city and APIKey are non-empty.
func (c *Client) FetchWeather(ctx context.Context, city string) (Result, error) {
	tracer := otel.Tracer("weather-app")
	ctx, span := tracer.Start(ctx, "weather: fetch")
	defer span.End()

	span.SetAttributes(attribute.String("city", city))

	requestURL, err := c.requestURL(city)
	if err != nil {
		return Result{}, fail(span, failWith(NetworkError, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return Result{}, fail(span, failWith(NetworkError, fmt.Errorf("failed to create request: %w", err)))
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Printf("Error calling weather API for city %s: %v", city, err)
		return Result{}, fail(span, failWith(NetworkError, err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Result{}, fail(span, &Failure{Reason: NotFound})
	default:
		log.Printf("Weather API returned status %d for city %s", resp.StatusCode, city)
		return Result{}, fail(span, &Failure{Reason: ServerError, Code: resp.StatusCode})
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fail(span, failWith(NetworkError, fmt.Errorf("failed to read response body: %w", err)))
	}

	// Anything after the JSON value makes the body malformed.
	var body OpenWeatherResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return Result{}, fail(span, failWith(MalformedResponse, fmt.Errorf("failed to decode response: %w", err)))
	}

	result, err := body.toResult()
	if err != nil {
		return Result{}, fail(span, failWith(MalformedResponse, err))
	}

	span.SetAttributes(attribute.Float64("temperature_c", result.TemperatureCelsius))
	span.SetStatus(codes.Ok, "")
	return result, nil
}

func (c *Client) requestURL(city string) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	q := u.Query()
	q.Set("q", city)
	q.Set("APPID", c.APIKey)
	q.Set("units", "metric")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (r OpenWeatherResponse) toResult() (Result, error) {
	if r.Main == nil || r.Main.Temp == nil {
		return Result{}, errMissingTemp
	}
	if len(r.Weather) == 0 || r.Weather[0].Description == nil {
		return Result{}, errMissingDescription
	}
	if r.Name == nil {
		return Result{}, errMissingName
	}
	return Result{
		City:               *r.Name,
		TemperatureCelsius: *r.Main.Temp,
		Description:        *r.Weather[0].Description,
	}, nil
}

func fail(span trace.Span, f *Failure) *Failure {
	span.SetAttributes(attribute.String("failure.reason", f.Reason.String()))
	span.RecordError(f)
	span.SetStatus(codes.Error, f.Reason.String())
	return f
}

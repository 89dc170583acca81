package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const testAPIKey = "test-key"

const parisBody = `{"main":{"temp":21.5},"weather":[{"description":"light rain"}],"name":"Paris"}`

func newTestClient(baseURL string) *Client {
	return NewClient(testAPIKey, baseURL, &http.Client{Timeout: DefaultTimeout})
}

func serveBody(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func requireFailure(t *testing.T, err error, reason Reason) *Failure {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s failure, got nil", reason)
	}
	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("expected *Failure, got %T: %v", err, err)
	}
	if f.Reason != reason {
		t.Fatalf("expected reason %s, got %s", reason, f.Reason)
	}
	return f
}

func TestFetchWeatherSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		q := r.URL.Query()
		if got := q.Get("q"); got != "Paris" {
			t.Errorf("expected q=Paris, got %s", got)
		}
		if got := q.Get("APPID"); got != testAPIKey {
			t.Errorf("expected APPID=%s, got %s", testAPIKey, got)
		}
		if got := q.Get("units"); got != "metric" {
			t.Errorf("expected units=metric, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(parisBody))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).FetchWeather(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Result{City: "Paris", TemperatureCelsius: 21.5, Description: "light rain"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if d := got.DisplayDescription(); d != "Light rain" {
		t.Errorf("expected display description %q, got %q", "Light rain", d)
	}
}

func TestFetchWeatherIsIdempotent(t *testing.T) {
	srv := serveBody(t, http.StatusOK, parisBody)
	client := newTestClient(srv.URL)

	first, err := client.FetchWeather(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := client.FetchWeather(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected equal results, got %+v and %+v", first, second)
	}
}

func TestFetchWeatherNotFound(t *testing.T) {
	for _, body := range []string{`{"cod":"404","message":"city not found"}`, "", "not json"} {
		srv := serveBody(t, http.StatusNotFound, body)
		_, err := newTestClient(srv.URL).FetchWeather(context.Background(), "Atlantis")
		requireFailure(t, err, NotFound)
	}
}

func TestFetchWeatherServerError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		srv := serveBody(t, status, `{"message":"nope"}`)
		_, err := newTestClient(srv.URL).FetchWeather(context.Background(), "Paris")
		f := requireFailure(t, err, ServerError)
		if f.Code != status {
			t.Errorf("expected code %d, got %d", status, f.Code)
		}
	}
}

func TestFetchWeatherMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing weather", `{"main":{"temp":21.5},"name":"Paris"}`},
		{"empty weather", `{"main":{"temp":21.5},"weather":[],"name":"Paris"}`},
		{"missing description", `{"main":{"temp":21.5},"weather":[{"main":"Rain"}],"name":"Paris"}`},
		{"missing main", `{"weather":[{"description":"light rain"}],"name":"Paris"}`},
		{"missing temp", `{"main":{},"weather":[{"description":"light rain"}],"name":"Paris"}`},
		{"missing name", `{"main":{"temp":21.5},"weather":[{"description":"light rain"}]}`},
		{"temp as string", `{"main":{"temp":"warm"},"weather":[{"description":"light rain"}],"name":"Paris"}`},
		{"weather as object", `{"main":{"temp":21.5},"weather":{"description":"light rain"},"name":"Paris"}`},
		{"not json", `<html>oops</html>`},
		{"trailing garbage", parisBody + ` garbage{`},
		{"two documents", parisBody + parisBody},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveBody(t, http.StatusOK, tt.body)
			got, err := newTestClient(srv.URL).FetchWeather(context.Background(), "Paris")
			requireFailure(t, err, MalformedResponse)
			if got != (Result{}) {
				t.Errorf("expected zero result, got %+v", got)
			}
		})
	}
}

func TestFetchWeatherNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).FetchWeather(context.Background(), "Paris")
	requireFailure(t, err, NetworkError)
}

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient()
	if c.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", c.Timeout)
	}
	if _, ok := c.Transport.(*otelhttp.Transport); !ok {
		t.Errorf("expected otelhttp transport, got %T", c.Transport)
	}
}

func TestFetchWeatherTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.Write([]byte(parisBody))
	}))
	defer srv.Close()

	httpClient := NewHTTPClient()
	httpClient.Timeout = 50 * time.Millisecond

	_, err := NewClient(testAPIKey, srv.URL, httpClient).FetchWeather(context.Background(), "Paris")
	requireFailure(t, err, NetworkError)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(testAPIKey, "", nil)
	if c.BaseURL != DefaultURL {
		t.Errorf("expected %s, got %s", DefaultURL, c.BaseURL)
	}
	hc, ok := c.HTTPClient.(*http.Client)
	if !ok || hc.Timeout != DefaultTimeout {
		t.Errorf("expected default http client with %s timeout, got %#v", DefaultTimeout, c.HTTPClient)
	}
}

func TestFetchWeatherContextCancelled(t *testing.T) {
	srv := serveBody(t, http.StatusOK, parisBody)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).FetchWeather(ctx, "Paris")
	requireFailure(t, err, NetworkError)
}

func TestDisplayDescription(t *testing.T) {
	tests := map[string]string{
		"":                 "",
		"light rain":       "Light rain",
		"CLEAR SKY":        "Clear sky",
		"überwiegend klar": "Überwiegend klar",
	}
	for in, want := range tests {
		if got := (Result{Description: in}).DisplayDescription(); got != want {
			t.Errorf("DisplayDescription(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFailureError(t *testing.T) {
	f := &Failure{Reason: ServerError, Code: 503}
	if got := f.Error(); got != "server_error (HTTP 503)" {
		t.Errorf("unexpected error text %q", got)
	}

	wrapped := errors.New("dial tcp: refused")
	if got := AsFailure(wrapped); got.Reason != NetworkError || !errors.Is(got, wrapped) {
		t.Errorf("expected NetworkError wrapping original, got %+v", got)
	}
	if AsFailure(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

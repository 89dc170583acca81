package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carlosfiori/weather-app/assets"
	"github.com/carlosfiori/weather-app/display"
)

type Handler struct {
	App    Querier
	Assets AssetLoader
}

func NewHandler(app Querier, loader AssetLoader) *Handler {
	return &Handler{App: app, Assets: loader}
}

// HandleIndex always shows an empty page; results belong to the request that
// produced them.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, display.UIState{}, "")
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	city := r.PostFormValue("city")
	log.Printf("Request received: city=%q, remote=%s", city, r.RemoteAddr)

	state := h.App.Submit(r.Context(), display.UIState{}, city)
	h.writePage(w, r, state, city)
}

func (h *Handler) HandleWeatherJSON(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")

	o := h.App.Lookup(r.Context(), city)
	if o.Failure != nil {
		WriteError(w, display.Message(o.Failure), StatusFor(o.Failure))
		return
	}

	resp := WeatherResponse{
		City:        o.Result.City,
		TempC:       o.Result.TemperatureCelsius,
		Description: o.Result.DisplayDescription(),
	}
	if o.Icon != nil {
		resp.Icon = o.Icon.Category.Filename()
	}
	WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) HandleAsset(w http.ResponseWriter, r *http.Request) {
	h.serveAsset(w, r, chi.URLParam(r, "name"))
}

func (h *Handler) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	h.serveAsset(w, r, assets.WindowIcon)
}

func (h *Handler) serveAsset(w http.ResponseWriter, r *http.Request, name string) {
	img := h.Assets.Load(name)
	if img == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(img.Data); err != nil {
		log.Printf("Error writing asset %s: %v", name, err)
	}
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, state display.UIState, city string) {
	_, span := otel.Tracer("weather-app").Start(r.Context(), "api: render-page")
	defer span.End()

	view := newPageView(state, city, h.Assets.Load(assets.Logo), h.Assets.Load(assets.WindowIcon) != nil)
	span.SetAttributes(attribute.Bool("icon.shown", view.Icon != ""))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, view); err != nil {
		span.RecordError(err)
		log.Printf("Error rendering page: %v", err)
	}
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", h.HandleIndex)
	r.Post("/weather", h.HandleSubmit)
	r.Get("/api/weather", h.HandleWeatherJSON)
	r.Get("/assets/{name}", h.HandleAsset)
	r.Get("/favicon.ico", h.HandleFavicon)

	return otelhttp.NewHandler(r, "weather-app-server")
}

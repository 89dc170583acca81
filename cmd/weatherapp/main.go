package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/carlosfiori/weather-app/api"
	"github.com/carlosfiori/weather-app/app"
	"github.com/carlosfiori/weather-app/assets"
	"github.com/carlosfiori/weather-app/display"
	"github.com/carlosfiori/weather-app/utils"
	"github.com/carlosfiori/weather-app/weather"
)

const (
	serviceName        = "weather-app"
	serviceVersion     = "0.1.0"
	defaultPort        = "8080"
	shutdownTimeout    = 10 * time.Second
	serverReadTimeout  = 10 * time.Second
	serverWriteTimeout = 40 * time.Second
	serverIdleTimeout  = 60 * time.Second
)

type config struct {
	APIKey       string
	WeatherURL   string
	Port         string
	AssetsDir    string
	TraceExport  string
	OTLPEndpoint string
	ZipkinURL    string
}

func loadConfig() config {
	// A missing .env is normal; the environment alone is enough.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: cannot read .env: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	return config{
		APIKey:       os.Getenv("OPENWEATHER_KEY"),
		WeatherURL:   os.Getenv("OPENWEATHER_URL"),
		Port:         port,
		AssetsDir:    os.Getenv("ASSETS_DIR"),
		TraceExport:  os.Getenv("OTEL_TRACES_EXPORTER"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ZipkinURL:    os.Getenv("ZIPKIN_URL"),
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns the process exit code. Setup errors are written to stderr
// directly since terminal mode discards log output.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := loadConfig()

	flags := flag.NewFlagSet("weatherapp", flag.ContinueOnError)
	flags.SetOutput(stderr)
	serve := flags.Bool("serve", false, "serve the web interface instead of the terminal prompt")
	port := flags.String("port", cfg.Port, "port for -serve")
	verbose := flags.Bool("v", false, "log queries in terminal mode")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	shutdownTracer, err := utils.InitTracer(context.Background(), utils.TracingConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Exporter:       cfg.TraceExport,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		ZipkinURL:      cfg.ZipkinURL,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: initializing tracing: %v\n", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if cfg.APIKey == "" {
		log.Println("warning: OPENWEATHER_KEY not set, queries will be rejected")
	}

	client := weather.NewClient(cfg.APIKey, cfg.WeatherURL, weather.NewHTTPClient())
	loader := assets.NewLoader(assets.NewDirResolver(cfg.AssetsDir))
	a := app.New(cfg.APIKey, client, loader)

	if *serve {
		return runServer(a, loader, *port)
	}

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	term := &display.Terminal{Out: stdout, Alerts: stderr}
	if city := strings.Join(flags.Args(), " "); city != "" {
		term.Draw(a.Submit(context.Background(), display.UIState{}, city))
		return 0
	}
	runPrompt(a, term, stdin, stdout)
	return 0
}

// runPrompt reads one city per line until EOF. Each line runs to completion
// before the next is read, and each result is drawn over the previous one.
func runPrompt(a *app.App, term *display.Terminal, in io.Reader, out io.Writer) {
	var state display.UIState
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Enter City Name: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		state = a.Submit(context.Background(), state, scanner.Text())
		term.Draw(state)
	}
}

func runServer(a *app.App, loader *assets.Loader, port string) int {
	handler := api.NewHandler(a, loader)
	router := api.SetupRouter(handler)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Weather app listening on http://localhost:%s", port)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Printf("Error starting server: %v", err)
		return 1
	case sig := <-shutdown:
		log.Printf("Received signal %v, shutting down gracefully...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Error during shutdown: %v", err)
			server.Close()
		}

		log.Println("Weather app stopped")
	}
	return 0
}

package weather

import (
	"net/http"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result is only built from a complete response; it is never partially populated.
type Result struct {
	City               string
	TemperatureCelsius float64
	Description        string
}

// DisplayDescription returns the description with its first letter upper-cased
// and the rest lower-cased. Description keeps the raw form for icon matching.
func (r Result) DisplayDescription() string {
	return capitalize(r.Description)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.English).String(string(first)) +
		cases.Lower(language.English).String(s[size:])
}

// OpenWeatherResponse mirrors the fields read from /data/2.5/weather. Pointers
// tell an absent field apart from a zero value.
type OpenWeatherResponse struct {
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Name *string `json:"name"`
}

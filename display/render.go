package display

import (
	"fmt"
	"strconv"

	"github.com/carlosfiori/weather-app/assets"
	"github.com/carlosfiori/weather-app/icon"
	"github.com/carlosfiori/weather-app/weather"
)

type Tone int

const (
	Normal Tone = iota
	Warning
	Error
)

func (t Tone) String() string {
	switch t {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "normal"
	}
}

// Alert is a modal message that leaves the result area untouched.
type Alert struct {
	Title   string
	Message string
	Tone    Tone
}

// Icon is the icon area. Image is nil when the asset could not be loaded.
type Icon struct {
	Category icon.Category
	Image    *assets.Image
}

type UIState struct {
	ResultText string
	ResultTone Tone
	Icon       *Icon
	Alert      *Alert
}

// Outcome is the result of one query: exactly one of Result or Failure is set.
type Outcome struct {
	Result  *weather.Result
	Icon    *Icon
	Failure *weather.Failure
}

func Success(r weather.Result, ic *Icon) Outcome {
	return Outcome{Result: &r, Icon: ic}
}

func Failed(f *weather.Failure) Outcome {
	return Outcome{Failure: f}
}

// Render derives the next state from the previous one. Input and credential
// problems raise an alert and keep the rest of prev; every other failure
// replaces the result text and clears the icon.
func Render(prev UIState, o Outcome) UIState {
	next := prev
	next.Alert = nil

	if o.Failure == nil && o.Result != nil {
		next.ResultText = ResultText(*o.Result)
		next.ResultTone = Normal
		next.Icon = o.Icon
		return next
	}

	f := o.Failure
	if f == nil {
		f = &weather.Failure{Reason: weather.MalformedResponse}
	}

	switch f.Reason {
	case weather.EmptyInput:
		next.Alert = &Alert{Title: "Input Error", Message: Message(f), Tone: Warning}
	case weather.MissingCredential:
		next.Alert = &Alert{Title: "Missing API Key", Message: Message(f), Tone: Error}
	default:
		next.ResultText = Message(f)
		next.ResultTone = Error
		next.Icon = nil
	}
	return next
}

func ResultText(r weather.Result) string {
	return fmt.Sprintf("%s\n%s°C\n%s", r.City, formatTemp(r.TemperatureCelsius), r.DisplayDescription())
}

// Message is the single user-facing text for a failure reason.
func Message(f *weather.Failure) string {
	switch f.Reason {
	case weather.EmptyInput:
		return "Please enter a city name!"
	case weather.MissingCredential:
		return "OPENWEATHER_KEY not found."
	case weather.NetworkError:
		return "Network error!"
	case weather.MalformedResponse:
		return "Bad API response."
	case weather.NotFound:
		return "City not found. Try again."
	case weather.ServerError:
		return fmt.Sprintf("Error %d.", f.Code)
	default:
		return "Network error!"
	}
}

func formatTemp(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}

package api

import (
	"encoding/base64"
	"html/template"
	"strings"

	"github.com/carlosfiori/weather-app/assets"
	"github.com/carlosfiori/weather-app/display"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Weather App</title>
{{if .HasFavicon}}<link rel="icon" href="/favicon.ico">{{end}}
<style>
body { background: #1e2a38; color: white; font-family: "Segoe UI", sans-serif; text-align: center; width: 420px; margin: 0 auto; }
input { font-size: 13pt; color: #333; text-align: center; padding: 8px 5px; border: 2px solid white; }
button { font-size: 11pt; font-weight: bold; color: white; background: #0078D7; border: none; padding: 5px 20px; margin: 10px; }
button:hover { background: #005A9E; }
.result { font-size: 13pt; font-weight: bold; white-space: pre-line; margin: 10px; }
.error { color: red; }
.alert { border: 1px solid; padding: 8px; margin: 10px; }
.alert.warning { color: #ffcc00; }
.alert.error { color: red; }
</style>
</head>
<body>
{{if .Logo}}<img src="{{.Logo}}" alt="Weather" style="margin: 15px 0 5px">{{else}}<h1>Weather</h1>{{end}}
<form method="post" action="/weather">
<h3>Enter City Name</h3>
<input type="text" name="city" value="{{.City}}" autofocus>
<br>
<button type="submit">Get Weather</button>
</form>
{{with .Alert}}<div class="alert {{.Tone}}"><strong>{{.Title}}</strong><br>{{.Message}}</div>{{end}}
{{if .Icon}}<div><img src="{{.Icon}}" alt="{{.IconName}}"></div>{{end}}
<div class="result{{if .IsError}} error{{end}}">{{.ResultText}}</div>
</body>
</html>
`))

type pageView struct {
	City       string
	Logo       template.URL
	HasFavicon bool
	Alert      *display.Alert
	Icon       template.URL
	IconName   string
	ResultText string
	IsError    bool
}

func newPageView(state display.UIState, city string, logo *assets.Image, hasFavicon bool) pageView {
	v := pageView{
		City:       strings.TrimSpace(city),
		Logo:       dataURL(logo),
		HasFavicon: hasFavicon,
		Alert:      state.Alert,
		ResultText: state.ResultText,
		IsError:    state.ResultTone == display.Error,
	}
	if state.Icon != nil && state.Icon.Image != nil {
		v.Icon = dataURL(state.Icon.Image)
		v.IconName = state.Icon.Category.String()
	}
	return v
}

// dataURL inlines an image so the page renders in one response.
func dataURL(img *assets.Image) template.URL {
	if img == nil {
		return ""
	}
	return template.URL("data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data))
}

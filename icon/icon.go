// Package icon maps a free-text weather description to one of five icon
// categories.
package icon

import "strings"

type Category int

const (
	Cloud Category = iota
	Clear
	Rain
	Storm
	Snow
)

var rules = []struct {
	keywords []string
	category Category
}{
	{[]string{"clear"}, Clear},
	{[]string{"cloud"}, Cloud},
	{[]string{"rain"}, Rain},
	{[]string{"thunder", "storm"}, Storm},
	{[]string{"snow"}, Snow},
}

// Select returns the category of the first rule whose keyword appears in
// description, case-insensitively. Rule order matters: "cloudy with rain" is
// Cloud. Descriptions matching nothing fall back to Cloud.
func Select(description string) Category {
	d := strings.ToLower(description)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(d, kw) {
				return rule.category
			}
		}
	}
	return Cloud
}

func (c Category) Filename() string {
	switch c {
	case Clear:
		return "sun.png"
	case Rain:
		return "rain.png"
	case Storm:
		return "storm.png"
	case Snow:
		return "snow.png"
	default:
		return "cloud.png"
	}
}

func (c Category) String() string {
	switch c {
	case Clear:
		return "clear"
	case Rain:
		return "rain"
	case Storm:
		return "storm"
	case Snow:
		return "snow"
	default:
		return "cloud"
	}
}

// Package web holds the HTML views, embedded into the binary.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"bookshelf/internal/http-api/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every view. Pages are addressed by file name, e.g. "shelf_list.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"mediaURL":    MediaURL,
		"avg":         formatAverage,
		"stars":       stars,
		"fieldError":  fieldError,
		"rateChoices": models.RateChoices,
		"categories":  func() []models.CategoryChoice { return models.Categories },
	}
}

// MediaURL is the public path of a stored thumbnail.
func MediaURL(key *string) string {
	if key == nil || *key == "" {
		return ""
	}
	return "/media/" + *key
}

func formatAverage(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func stars(rate int) string {
	if rate < 0 {
		rate = 0
	}
	if rate > models.MaxRate {
		rate = models.MaxRate
	}
	return strings.Repeat("★", rate) + strings.Repeat("☆", models.MaxRate-rate)
}

func fieldError(errs map[string]string, field string) string {
	if errs == nil {
		return ""
	}
	return errs[field]
}

package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gitlab.com/gastonapp/gaston-api/internal/models"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var titleCaser = cases.Title(language.Spanish)

// normalizeName trims and title-cases a category or expense name.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > models.MaxNameLength {
		return "", fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, models.MaxNameLength)
	}
	return titleCaser.String(name), nil
}

// normalizeColor validates a #RRGGBB color, falling back to the default
// when none is given.
func normalizeColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		return models.DefaultCategoryColor, nil
	}
	if !colorPattern.MatchString(color) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return "#" + strings.ToUpper(color[1:]), nil
}

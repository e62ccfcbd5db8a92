package render

import (
	"strconv"
	"strings"
	"time"

	"tourdesk/shared/constant"
	"tourdesk/shared/timezone"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

type rgb struct {
	r, g, b int
}

var (
	defaultBrand = rgb{30, 58, 138}
	textColor    = rgb{33, 37, 41}
	mutedColor   = rgb{108, 117, 125}
	ruleColor    = rgb{206, 212, 218}
	shadeColor   = rgb{241, 243, 245}
)

// parseColor reads "#RRGGBB". Anything else gives the default brand color.
func parseColor(hex string) rgb {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return defaultBrand
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return defaultBrand
	}

	return rgb{int(value >> 16 & 0xFF), int(value >> 8 & 0xFF), int(value & 0xFF)}
}

// money formats amount with thousands grouping and two decimals, prefixed by label when set.
func money(label string, amount float64) string {
	formatted := printer.Sprintf("%.2f", amount)
	if label == "" {
		return formatted
	}

	return label + " " + formatted
}

func displayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(constant.DisplayFormat)
}

func displayDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}

	return displayDate(*t)
}

// displayDay reformats a YYYY-MM-DD string. Other values are printed as given.
func displayDay(value string) string {
	day, err := timezone.Parse(constant.DayFormat, strings.TrimSpace(value))
	if err != nil {
		return value
	}

	return displayDate(day)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}

	return strconv.Itoa(n) + " " + many
}

var typographic = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201C", "\"", "\u201D", "\"",
	"\u2013", "-", "\u2014", "-", "\u2026", "...", "\u20AC", "EUR",
)

// latin1 folds common typographic runes to ASCII and replaces anything else the core fonts
// cannot measure.
func latin1(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 255 {
			return '?'
		}

		return r
	}, typographic.Replace(s))
}

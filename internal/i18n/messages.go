// Package i18n holds the student-facing strings as a typed lookup table
// keyed by enumerated identifiers. A missing entry is logged and replaced by
// a visible sentinel instead of silently traversing untyped maps.
package i18n

import "github.com/rs/zerolog"

// Key enumerates every translatable message.
type Key string

// Message keys.
const (
	KeyExplainFallback Key = "explain.fallback"
	KeySummaryCTALabel Key = "summary.cta_label"
	KeyMissionComplete Key = "mission.complete"
)

// Locale selects a message table.
type Locale string

// Supported locales.
const (
	LocaleZhTW Locale = "zh-TW"
	LocaleEn   Locale = "en"
)

var tables = map[Locale]map[Key]string{
	LocaleZhTW: {
		KeyExplainFallback: "解析生成失敗，請稍後再試。",
		KeySummaryCTALabel: "再試一題",
		KeyMissionComplete: "任務完成！",
	},
	LocaleEn: {
		KeyExplainFallback: "We could not generate an explanation. Please try again later.",
		KeySummaryCTALabel: "Try another",
		KeyMissionComplete: "Mission complete!",
	},
}

// Table resolves message keys for one locale.
type Table struct {
	locale Locale
	logger zerolog.Logger
}

// NewTable builds a lookup table for the locale, falling back to zh-TW for
// unknown locales.
func NewTable(locale Locale, logger zerolog.Logger) *Table {
	if _, ok := tables[locale]; !ok {
		locale = LocaleZhTW
	}
	return &Table{
		locale: locale,
		logger: logger.With().Str("component", "i18n").Logger(),
	}
}

// Lookup returns the message for key. A missing key logs a warning and
// returns a "??key??" sentinel so the gap is visible in the UI rather than
// blank.
func (t *Table) Lookup(key Key) string {
	if message, ok := tables[t.locale][key]; ok {
		return message
	}
	t.logger.Warn().Str("locale", string(t.locale)).Str("key", string(key)).Msg("missing translation key")
	return "??" + string(key) + "??"
}

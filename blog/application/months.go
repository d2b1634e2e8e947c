package application

import (
	"time"

	"golang.org/x/text/language"
)

// MonthFormatter returns the localized full month name for an instant.
// Locale is carried by the formatter value, never by process-wide state.
type MonthFormatter interface {
	MonthName(t time.Time) string
}

var supportedLocales = []language.Tag{
	language.English, // first entry is the fallback
	language.Russian,
}

var localeMatcher = language.NewMatcher(supportedLocales)

var monthTables = map[language.Tag][12]string{
	language.English: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	language.Russian: {
		"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
	},
}

type localeMonthFormatter struct {
	names [12]string
}

// NewMonthFormatter builds a formatter for the BCP 47 locale given.
// Unknown or empty locales fall back to English.
func NewMonthFormatter(locale string) MonthFormatter {
	_, idx, _ := language.MatchStrings(localeMatcher, locale)
	return &localeMonthFormatter{names: monthTables[supportedLocales[idx]]}
}

func (f *localeMonthFormatter) MonthName(t time.Time) string {
	return f.names[int(t.Month())-1]
}

package output

// T is the minimal i18n contract for user-facing texts: message lookup plus
// templating for a locale. data may be nil when the message has no
// placeholders.
type T interface {
	T(locale, key string, data map[string]any) string
}

package api

import (
	"net/http"

	"golang.org/x/text/language"
)

// Supported response locales. English is the default when the
// Accept-Language header is absent or matches neither.
var supportedLocales = []language.Tag{
	language.English,
	language.French,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// messages holds the localized envelope texts per locale, keyed by the
// message code used at the call sites.
var messages = map[language.Tag]map[string]string{
	language.English: {
		"customer.added":     "customer added",
		"customer.updated":   "customer updated",
		"customer.deleted":   "customer deleted",
		"customer.fetched":   "customer fetched",
		"customer.not.found": "customer not found for the given email id",
		"bad.request":        "bad request",
		"internal.error":     "internal server error",
	},
	language.French: {
		"customer.added":     "client ajouté",
		"customer.updated":   "client mis à jour",
		"customer.deleted":   "client supprimé",
		"customer.fetched":   "client récupéré",
		"customer.not.found": "client introuvable pour l'identifiant email donné",
		"bad.request":        "requête invalide",
		"internal.error":     "erreur interne du serveur",
	},
}

// localize resolves the message for the request's Accept-Language header.
func localize(r *http.Request, key string) string {
	tags, _, _ := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	_, idx, _ := localeMatcher.Match(tags...)
	catalog := messages[supportedLocales[idx]]
	if msg, ok := catalog[key]; ok {
		return msg
	}
	return messages[language.English][key]
}

package database

import "net/url"

// ConstructDatabaseURL joins a base connection URL with a database name. An
// empty name leaves the URL untouched, so a fully-formed DATABASE_URL works
// on its own. sslmode defaults to disable unless the URL already picked one.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		// Pass malformed URLs through; the pool reports the real error
		return baseURL
	}
	u.Path = "/" + databaseName

	query := u.Query()
	if query.Get("sslmode") == "" {
		query.Set("sslmode", "disable")
	}
	u.RawQuery = query.Encode()

	return u.String()
}

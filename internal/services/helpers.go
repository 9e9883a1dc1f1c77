package services

import "github.com/google/uuid"

// isUUID guards store lookups; ids that cannot parse can never match a row.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// canonicalID returns the lowercase hyphenated form the store uses for keys.
func canonicalID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

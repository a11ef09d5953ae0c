package api

import (
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ideahub/ideahub-backend/database"
)

// Listing parameters degrade silently: an absent or unparseable value imposes
// no constraint, and a bad page falls back to the first one.

func parsePage(values url.Values) database.Page {
	number, err := strconv.Atoi(values.Get("page"))
	if err != nil || number < 1 {
		number = 1
	}
	return database.Page{Number: number}
}

func parseProjectFilter(values url.Values) database.ProjectFilter {
	// A user value that is not a uuid can never match an owner; drop it so
	// the database is not asked to compare garbage against a uuid column.
	user := values.Get("user")
	if _, err := uuid.Parse(user); err != nil {
		user = ""
	}

	return database.ProjectFilter{
		User:       user,
		Difficulty: values.Get("difficulty"),
		LikesFrom:  parseIntBound(values.Get("likesFrom")),
		LikesTo:    parseIntBound(values.Get("likesTo")),
		DateFrom:   parseTimeBound(values.Get("dateFrom")),
		DateTo:     parseTimeBound(values.Get("dateTo")),
	}
}

func parseUserFilter(values url.Values) database.UserFilter {
	return database.UserFilter{
		Username:  values.Get("username"),
		Email:     values.Get("email"),
		IdeasFrom: parseIntBound(values.Get("ideasFrom")),
		IdeasTo:   parseIntBound(values.Get("ideasTo")),
	}
}

func parseIntBound(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func parseTimeBound(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

package api

import (
	"github.com/ideahub/ideahub-backend/auth"
	"github.com/ideahub/ideahub-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, tokens auth.TokenIssuer, secureCookies bool) *routeHandlers {
	return &routeHandlers{
		userHandler:    newUserHandler(database.UserRepo(), tokens, secureCookies),
		projectHandler: newProjectHandler(database.ProjectRepo(), database.UserRepo()),
	}
}

// File: twinmind/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth endpoints
	LoginHandler  gin.HandlerFunc
	LogoutHandler gin.HandlerFunc

	// Schedule endpoints
	PlanHandler          gin.HandlerFunc
	AgendaHandler        gin.HandlerFunc
	CancelEventHandler   gin.HandlerFunc
	NotificationsHandler gin.HandlerFunc

	// Assistant endpoints
	ChatHandler gin.HandlerFunc

	// Mail endpoints
	UnreadMailHandler gin.HandlerFunc
}

package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth endpoints
	InitiateLoginHandler gin.HandlerFunc
	VerifyLoginHandler   gin.HandlerFunc
	LogoutHandler        gin.HandlerFunc

	// User endpoints
	GetCurrentUserHandler   gin.HandlerFunc
	UpdateProfileHandler    gin.HandlerFunc
	UploadAvatarHandler     gin.HandlerFunc
	RegisterFCMTokenHandler gin.HandlerFunc

	// Intelligence endpoints
	ResolveDestinationHandler gin.HandlerFunc

	// Trip endpoints
	CreateTripHandler      gin.HandlerFunc
	ListTripsHandler       gin.HandlerFunc
	GetTripHandler         gin.HandlerFunc
	DeleteTripHandler      gin.HandlerFunc
	AddExpenseHandler      gin.HandlerFunc
	BudgetSummaryHandler   gin.HandlerFunc
	ExportItineraryHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the handler structs.
func NewHandlerBundle(authH *AuthHandler, userH *UserHandler, intelH *IntelligenceHandler, tripH *TripHandler) *HandlerBundle {
	return &HandlerBundle{
		InitiateLoginHandler: authH.InitiateLoginHandler,
		VerifyLoginHandler:   authH.VerifyLoginHandler,
		LogoutHandler:        authH.LogoutHandler,

		GetCurrentUserHandler:   userH.GetCurrentUserHandler,
		UpdateProfileHandler:    userH.UpdateProfileHandler,
		UploadAvatarHandler:     userH.UploadAvatarHandler,
		RegisterFCMTokenHandler: userH.RegisterFCMTokenHandler,

		ResolveDestinationHandler: intelH.ResolveDestinationHandler,

		CreateTripHandler:      tripH.CreateTripHandler,
		ListTripsHandler:       tripH.ListTripsHandler,
		GetTripHandler:         tripH.GetTripHandler,
		DeleteTripHandler:      tripH.DeleteTripHandler,
		AddExpenseHandler:      tripH.AddExpenseHandler,
		BudgetSummaryHandler:   tripH.BudgetSummaryHandler,
		ExportItineraryHandler: tripH.ExportItineraryHandler,
	}
}

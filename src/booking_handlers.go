package main

import (
	"errors"
	"log"
	"net/http"

	"crs/src/db"
	"crs/src/engine"
	"crs/src/models"
	"crs/src/types"
	"crs/src/utils"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var bookings []models.Booking
			err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{UserID: userId}).
				Order("checkin_date desc").
				Limit(100).
				Find(&bookings).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var booking models.Booking
			if err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				Preload("Room").
				Preload("Payment").
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			if booking.UserID != ctx.GetUint("id") && ctx.GetString("role") != "admin" {
				ctx.Status(http.StatusForbidden)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			property := types.Property(body.Property)
			mode := types.BookingMode(body.Mode)
			if !property.Valid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown property"})
				return
			}
			if !mode.Valid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown booking mode"})
				return
			}
			if body.SkipValidation && ctx.GetString("role") != "admin" {
				ctx.Status(http.StatusForbidden)
				return
			}
			checkin, err := utils.ParseStayDate(body.CheckinDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkout, err := utils.ParseStayDate(body.CheckoutDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			req := &engine.BookingRequest{
				Property:       property,
				Mode:           mode,
				RoomID:         body.RoomID,
				CheckinDate:    checkin,
				CheckoutDate:   checkout,
				GuestsCount:    body.GuestsCount,
				ChildrenCount:  body.ChildrenCount,
				UserID:         ctx.GetUint("id"),
				SkipValidation: body.SkipValidation,
			}
			booking, verrs, err := engine.ValidateAndPrice(db.GetDb(), req)
			if err != nil {
				if errors.Is(err, engine.ErrNoPricingRuleFound) || errors.Is(err, engine.ErrNoSeasonConfigured) {
					log.Printf("[alert] configuration gap blocking bookings: %s\n", err.Error())
				} else {
					log.Printf("Could not complete request: %s\n", err.Error())
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			if len(verrs) > 0 {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CancelBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			idempotencyKey := ctx.Request.Header.Get("Idempotency-Key")
			if idempotencyKey == "" {
				idempotencyKey = body.IdempotencyKey
			}
			if idempotencyKey == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key is required"})
				return
			}

			gdb := db.GetDb()
			var booking models.Booking
			if err := gdb.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			if booking.UserID != ctx.GetUint("id") && ctx.GetString("role") != "admin" {
				ctx.Status(http.StatusForbidden)
				return
			}

			result, err := engine.CancelAndRefund(gdb, &engine.CancelRequest{
				BookingID:      params.ID,
				Reason:         body.Reason,
				IdempotencyKey: idempotencyKey,
			})
			if err != nil {
				if errors.Is(err, engine.ErrNoPolicyConfigured) {
					log.Printf("[alert] no active refund policy for booking %d: %s\n", params.ID, err.Error())
				} else {
					log.Printf("Could not complete request: %s\n", err.Error())
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		}).
		GET("/availability", func(ctx *gin.Context) {
			var query types.AvailabilityRequestQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			property := types.Property(query.Property)
			if !property.Valid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown property"})
				return
			}
			from, err := utils.ParseStayDate(query.From)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			to, err := utils.ParseStayDate(query.To)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if !from.Before(to) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "from must be before to"})
				return
			}
			conflicts, err := engine.Availability(db.GetDb(), property, query.RoomID, from, to)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": conflicts, "count": len(conflicts)})
		})
	return g
}

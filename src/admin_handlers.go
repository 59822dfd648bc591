package main

import (
	"log"
	"net/http"

	"crs/src/common"
	"crs/src/db"
	"crs/src/engine"
	"crs/src/lib"
	"crs/src/middlewares"
	"crs/src/models"
	"crs/src/types"
	"crs/src/utils"

	"github.com/gin-gonic/gin"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	admin := g.Group("/admin", middlewares.AdminOnly)
	admin.
		GET("/seasons", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.Model(&models.Season{}).Order("property asc, id asc")
			if p := ctx.Query("property"); p != "" {
				query = query.Where("property = ?", p)
			}
			var seasons []models.Season
			if err := query.Find(&seasons).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": seasons, "count": len(seasons)})
		}).
		GET("/rooms", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.Model(&models.Room{}).Preload("RoomCategory").Order("id asc")
			if p := ctx.Query("property"); p != "" {
				query = query.Where("property = ?", p)
			}
			var rooms []models.Room
			if err := query.Find(&rooms).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms, "count": len(rooms)})
		}).
		GET("/pricing-rules", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.Model(&models.PricingRule{}).Order("id asc")
			if p := ctx.Query("property"); p != "" {
				query = query.Where("property = ?", p)
			}
			if m := ctx.Query("mode"); m != "" {
				query = query.Where("mode = ?", m)
			}
			var rules []models.PricingRule
			if err := query.Find(&rules).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rules, "count": len(rules)})
		}).
		GET("/refund-policies", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.Model(&models.RefundPolicy{}).Preload("Rules").Order("id asc")
			if p := ctx.Query("property"); p != "" {
				query = query.Where("property = ?", p)
			}
			var policies []models.RefundPolicy
			if err := query.Find(&policies).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": policies, "count": len(policies)})
		}).
		POST("/cache/invalidate", func(ctx *gin.Context) {
			var body types.InvalidateCacheRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if !body.All && body.Key == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "key or all is required"})
				return
			}
			if body.All {
				engine.Cache.InvalidateAll()
				common.PublishCacheInvalidation("*")
			} else {
				engine.Cache.Invalidate(body.Key)
				common.PublishCacheInvalidation(body.Key)
			}
			utils.RecordTrail(db.GetDb(), ctx.GetUint("id"), "cache.invalidate", "config_cache", 0, map[string]any{
				"key": body.Key,
				"all": body.All,
			})
			ctx.Status(http.StatusNoContent)
		}).
		GET("/pending-refunds", func(ctx *gin.Context) {
			db := db.GetDb()
			status := ctx.DefaultQuery("status", string(types.PENDING_REFUND_OPEN))
			var pendings []models.PendingRefund
			err := db.
				Model(&models.PendingRefund{}).
				Where("status = ?", status).
				Order("created_at asc").
				Find(&pendings).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": pendings, "count": len(pendings)})
		}).
		PUT("/pending-refunds/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.ResolvePendingRefundRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			gdb := db.GetDb()
			var pending models.PendingRefund
			if err := gdb.
				Where(&models.PendingRefund{ID: params.ID}).
				First(&pending).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			if pending.Status != types.PENDING_REFUND_OPEN {
				ctx.JSON(http.StatusConflict, gin.H{"error": "pending refund already resolved"})
				return
			}

			// On approval the provider is charged first; the row only flips
			// once money has actually moved, so a provider failure leaves it
			// open for the reviewer to retry.
			status := types.PENDING_REFUND_DENIED
			if body.Approve {
				status = types.PENDING_REFUND_APPROVED
				var payment models.Payment
				if err := gdb.
					Where(&models.Payment{BookingID: pending.BookingID}).
					First(&payment).
					Error; err != nil {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				refundId, err := lib.CreateRefund(payment.ReferenceID, pending.PolicyRefundAmountCents)
				if err != nil {
					log.Printf("[alert] stripe refund for pending refund %d failed: %s\n", pending.ID, err.Error())
					ctx.JSON(http.StatusBadGateway, gin.H{"error": "refund provider error"})
					return
				}
				gdb.
					Model(&models.RefundResult{}).
					Where(&models.RefundResult{PendingRefundID: &pending.ID}).
					Update("provider_refund_id", refundId)
			}

			res := gdb.
				Model(&models.PendingRefund{}).
				Where("id = ? AND status = ?", pending.ID, types.PENDING_REFUND_OPEN).
				Updates(map[string]any{"status": status, "notes": body.Notes})
			if res.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusConflict, gin.H{"error": "pending refund already resolved"})
				return
			}
			pending.Status = status
			pending.Notes = body.Notes
			utils.RecordTrail(gdb, ctx.GetUint("id"), "pending_refund.resolve", "pending_refunds", pending.ID, map[string]any{
				"status": string(pending.Status),
				"notes":  body.Notes,
			})
			ctx.JSON(http.StatusOK, gin.H{"data": pending})
		})
	return g
}

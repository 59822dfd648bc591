package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"crs/src/boot"
	"crs/src/config"
	"crs/src/engine"
	"crs/src/middlewares"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
)

const apiPrefix = "/api/v1"

var staydateValidator validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(config.DATE_PARSE_FORMAT, value)
	return err == nil
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("staydate", staydateValidator)
	}
}

func setupLogger() {
	logger := &lumberjack.Logger{
		Filename:   os.Getenv("LOG_FILE"),
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	if logger.Filename == "" {
		logger.Filename = "logs/crs.log"
	}
	log.SetOutput(io.MultiWriter(os.Stderr, logger))
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(router *gin.Engine) *gin.Engine {
	router.Use(func(ctx *gin.Context) {
		if os.Getenv("MAINTENANCE_MODE") == "true" && strings.HasPrefix(ctx.Request.URL.Path, apiPrefix) {
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "down for maintenance"})
			return
		}
		ctx.Next()
	})
	return router
}

func apiv1Group(router *gin.Engine) *gin.RouterGroup {
	return router.Group(apiPrefix)
}

func main() {
	setupLogger()
	registerValidators()
	engine.Cache.SetTTL(config.ConfigCacheTTL())

	gdb := boot.InitDb()
	boot.ValidateConfiguration(gdb)
	boot.InitBroker()
	boot.InitScheduler()
	defer boot.StopScheduler()

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1 := apiv1Group(router)
	apiv1.Use(middlewares.AuthMiddleware)
	bookingHandlers(apiv1)
	adminHandlers(apiv1)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("[server] listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %s", err.Error())
	}
}

package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"taskdeck/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	authH *AuthHandler,
	profileH *ProfileHandler,
	taskH *TaskHandler,
	jwtSvc *service.JWTService,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery, métricas y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), metricsMiddleware(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/login", authH.Login)
	api.POST("/register", authH.Register)
	api.POST("/verify-email", authH.VerifyEmail)
	api.POST("/forgot-password", authH.ForgotPassword)
	api.POST("/change-password", authH.ChangePassword)

	// Los endpoints de perfil no exigen autenticación.
	api.GET("/profile/:id", profileH.Get)
	api.PUT("/profile/:id", profileH.Update)
	api.DELETE("/profile/:id", profileH.Delete)
	api.POST("/profile/:id/picture", profileH.UploadPicture)

	tasks := api.Group("/tasks")
	tasks.Use(JWTAuthMiddleware(jwtSvc))
	tasks.POST("", taskH.Create)
	tasks.GET("", taskH.List)
	tasks.GET("/:id", taskH.Get)
	tasks.PUT("/:id", taskH.Update)
	tasks.PATCH("/:id", taskH.Patch)
	tasks.DELETE("/:id", taskH.Delete)
	tasks.PATCH("/:id/complete", taskH.Complete)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"farmatrack/internal/service"
)

// Services всё, что обслуживает HTTP-слой
type Services struct {
	Doctors  *service.DoctorService
	Products *service.ProductService
	Tasks    *service.TaskService
	Targets  *service.TargetService
	Users    *service.UserService
	Stock    *service.MrStockService
	Auth     *service.AuthService
}

type Options struct {
	// StrictNotFound: 404 вместо 400 для ненайденных сущностей
	StrictNotFound bool
	// AuthRequired: /api только с bearer-токеном
	AuthRequired bool
	AllowOrigins []string
}

type Server struct {
	engine *gin.Engine
	svc    Services
	opts   Options
}

func NewServer(svc Services, opts Options) *Server {
	registerValidators()
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(requestID(), requestLogger(), gin.CustomRecovery(recoverPanic), errorResponder(opts.StrictNotFound))
	if len(opts.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
			ExposeHeaders: []string{requestIDHeader},
		}))
	}
	r.NoRoute(func(c *gin.Context) { writeError(c, http.StatusNotFound, "Resource not found") })
	r.NoMethod(func(c *gin.Context) { writeError(c, http.StatusMethodNotAllowed, "Method not allowed") })
	s := &Server{engine: r, svc: svc, opts: opts}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	s.engine.POST("/api/auth/login", s.login)

	api := s.engine.Group("/api")
	if s.opts.AuthRequired {
		api.Use(s.bearerAuth())
	}
	{
		doctors := api.Group("/doctors")
		doctors.GET("", s.listDoctors)
		doctors.GET(":id", s.getDoctor)
		doctors.POST("", s.createDoctor)
		doctors.PUT(":id", s.updateDoctor)
		doctors.DELETE(":id", s.deleteDoctor)

		products := api.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)
		products.POST("", s.createProduct)
		products.PUT(":id", s.updateProduct)
		products.DELETE(":id", s.deleteProduct)

		tasks := api.Group("/tasks")
		tasks.GET("", s.listTasks)
		tasks.GET(":id", s.getTask)
		tasks.POST("", s.createTask)
		tasks.PUT(":id", s.updateTask)
		tasks.DELETE(":id", s.deleteTask)

		targets := api.Group("/targets")
		targets.GET("", s.listTargets)
		targets.GET(":id", s.getTarget)
		targets.POST("", s.createTarget)
		targets.PUT(":id", s.updateTarget)
		targets.DELETE(":id", s.deleteTarget)

		users := api.Group("/users")
		users.GET("", s.listUsers)
		users.GET(":id", s.getUser)
		users.POST("", s.createUser)
		users.PUT(":id", s.updateUser)
		users.DELETE(":id", s.deleteUser)

		stock := api.Group("/mr-stock")
		stock.GET("", s.listStock)
		stock.POST("seed", s.seedStock)
		stock.GET(":id", s.getStock)
		stock.PUT(":id", s.updateStock)
		stock.POST(":id/adjust", s.adjustStock)
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Bentshims/Fastmoney/internal/events"
	"github.com/Bentshims/Fastmoney/internal/handler"
	"github.com/Bentshims/Fastmoney/internal/repository"
	"github.com/Bentshims/Fastmoney/internal/service"
	"github.com/Bentshims/Fastmoney/pkg/config"
	"github.com/Bentshims/Fastmoney/pkg/middleware"
	pkgtls "github.com/Bentshims/Fastmoney/pkg/tls"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client:", err)
	}

	businessRepo := repository.NewBusinessRepository(dynamoClient, cfg.BusinessTableName)
	userRepo := repository.NewUserRepository(dynamoClient, cfg.UserTableName, cfg.UserEmailIndex)
	employeeRepo := repository.NewEmployeeRepository(dynamoClient, cfg.EmployeeTableName, cfg.EmployeeEmailIndex, cfg.EmployeeBusinessIndex)
	productRepo := repository.NewProductRepository(dynamoClient, cfg.ProductTableName, cfg.ProductBusinessIndex)
	saleRepo := repository.NewSaleRepository(dynamoClient, cfg.SaleTableName, cfg.ProductTableName, cfg.SaleBusinessIndex)

	var publisher service.SalePublisher
	if cfg.KafkaBrokers != "" {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer producer.Close()
		publisher = producer
	}

	authService := service.NewAuthService(userRepo, employeeRepo, businessRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	productService := service.NewProductService(productRepo, logger)
	employeeService := service.NewEmployeeService(employeeRepo, userRepo, logger)
	saleService := service.NewSaleService(saleRepo, productRepo, businessRepo, employeeRepo, publisher, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	employeeHandler := handler.NewEmployeeHandler(employeeService, logger)
	saleHandler := handler.NewSaleHandler(saleService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "healthy"})
		})

		authed := v1.Group("", middleware.Auth(cfg.JWTSecret))
		{
			authed.POST("/products", productHandler.CreateProduct)
			authed.GET("/products", productHandler.ListProducts)
			authed.GET("/products/:id", productHandler.GetProduct)
			authed.PUT("/products/:id", productHandler.UpdateProduct)
			authed.DELETE("/products/:id", productHandler.DeleteProduct)
			authed.POST("/products/:id/adjust-stock", productHandler.AdjustStock)

			staff := authed.Group("", middleware.RequireRole("OWNER", "MANAGER"))
			{
				staff.POST("/employees", employeeHandler.CreateEmployee)
				staff.DELETE("/employees/:id", employeeHandler.DeleteEmployee)
			}
			authed.GET("/employees", employeeHandler.ListEmployees)

			authed.POST("/sales", saleHandler.CreateSale)
			authed.GET("/sales", saleHandler.ListSales)
			authed.GET("/sales/:id", saleHandler.GetSale)
		}
	}

	tlsConfig, err := pkgtls.LoadTLSConfig(&cfg.TLS, logger)
	if err != nil {
		log.Fatal("Failed to load TLS config:", err)
	}
	defer pkgtls.Cleanup()

	srv := &http.Server{
		Addr:      ":" + cfg.Port,
		Handler:   router,
		TLSConfig: tlsConfig,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))
		var err error
		if tlsConfig != nil {
			go pkgtls.WatchCertificates(logger)
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

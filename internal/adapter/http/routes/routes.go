package routes

import (
	"log"
	"strconv"

	_ "autoshop/docs" // swag-generated API docs
	"autoshop/internal/adapter/http/handlers"
	"autoshop/internal/adapter/http/middleware"
	"autoshop/internal/adapter/persistence/repository"
	"autoshop/internal/infrastructure/config"
	"autoshop/internal/infrastructure/database"
	"autoshop/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid shop configuration: %v", err)
	}

	ddb := database.ConnectDynamoDB()

	estimateRepo := repository.NewEstimateDynamoRepository(ddb)
	workOrderRepo := repository.NewWorkOrderDynamoRepository(ddb)
	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb)
	appointmentRepo := repository.NewAppointmentDynamoRepository(ddb)
	customers := repository.NewCustomerDynamoGateway(ddb)
	vehicles := repository.NewVehicleDynamoGateway(ddb)
	txn := repository.NewDocumentTxn(ddb)

	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, customers, vehicles, txn, cfg)
	workOrderUseCase := usecase.NewWorkOrderUseCase(workOrderRepo, customers, vehicles, txn, cfg)
	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, customers, vehicles, cfg)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, invoiceRepo, txn)
	appointmentUseCase := usecase.NewAppointmentUseCase(appointmentRepo, customers, vehicles, cfg)

	estimateHandler := handlers.NewEstimateHandler(estimateUseCase)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrderUseCase)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addShopRoutes(v1, estimateHandler, workOrderHandler, invoiceHandler, paymentHandler, appointmentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
	router.Use(cors.Default())
	router.Use(middleware.BearerActor())
}

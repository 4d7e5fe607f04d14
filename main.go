package main

import (
	"github.com/dilshat/sms-gateway/broker"
	"github.com/dilshat/sms-gateway/controller"
	"github.com/dilshat/sms-gateway/dao"
	_ "github.com/dilshat/sms-gateway/docs"
	"github.com/dilshat/sms-gateway/log"
	"github.com/dilshat/sms-gateway/provider"
	"github.com/dilshat/sms-gateway/service"
	"github.com/dilshat/sms-gateway/util"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// @title Sms gateway HTTP API
// @description Simulated multi-provider sms gateway

// @contact.name Dilshat Aliev
// @contact.email dilshat.aliev@gmail.com

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Error.Println(err)
	}
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	//create db client
	dbClient, err := dao.GetClient(util.GetEnv("DB_PATH", "sms.db"))
	if err != nil {
		log.Fatal(err)
	}

	//register simulated providers
	registry := provider.NewDefaultRegistry()

	//create event broker for live subscribers
	events := broker.New(util.GetEnvAsInt("SSE_BUFFER", broker.DefaultBufferSize))

	smsService := service.NewService(registry, dao.NewMessageDao(dbClient), events)

	//attach http handlers
	e := echo.New()
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("2K"))

	bindRoutes(e, smsService)

	//start http server
	log.Fatal(e.Start(":" + util.GetEnv("HTTP_PORT", "8080")))
}

func bindRoutes(e *echo.Echo, srv service.Service) {

	e.GET("/health", controller.GetHealthFunc(srv))

	e.POST("/api/sms/send/:provider", controller.GetSendSmsFunc(srv))

	e.POST("/api/sms/simulate-delivery", controller.GetSimulateDeliveryFunc(srv))

	e.GET("/api/sms", controller.GetListSmsFunc(srv))

	e.GET("/api/sms/:id", controller.GetSmsFunc(srv))

	e.GET("/api/events", controller.GetEventsFunc(srv))
}

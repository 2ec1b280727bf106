package routes

import (
	"debtflow-backend/config"
	"debtflow-backend/controllers"
	"debtflow-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Controllers bundles the handlers that carry service dependencies.
// Plain CRUD handlers stay package-level functions.
type Controllers struct {
	Templates *controllers.TemplateController
	Settings  *controllers.SettingsController
	Reminders *controllers.ReminderController
	Responses *controllers.ResponseController
	Webhooks  *controllers.WebhookController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public endpoints: the tokenized response link and the provider
	// delivery callback. Neither carries a JWT.
	r.POST("/r/:token", ctrl.Responses.Intake)
	r.POST("/webhooks/delivery", ctrl.Webhooks.DeliveryStatus)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Debt routes
		debts := api.Group("/debts")
		{
			debts.POST("", controllers.CreateDebt)
			debts.GET("", controllers.GetDebts)
			debts.GET("/:id", controllers.GetDebt)
			debts.PUT("/:id", controllers.UpdateDebt)
		}

		// Template routes
		templates := api.Group("/templates")
		{
			templates.POST("", ctrl.Templates.CreateTemplate)
			templates.GET("", ctrl.Templates.GetTemplates)
			templates.GET("/:id", ctrl.Templates.GetTemplate)
			templates.PUT("/:id", ctrl.Templates.UpdateTemplate)
			templates.DELETE("/:id", ctrl.Templates.DeleteTemplate)
		}

		// Scheduling settings
		api.GET("/settings/reminders", ctrl.Settings.GetReminderSettings)
		api.PUT("/settings/reminders", ctrl.Settings.UpdateReminderSettings)

		// Delivery ledger
		reminders := api.Group("/reminders")
		{
			reminders.GET("", ctrl.Reminders.GetReminders)
			reminders.POST("/run", ctrl.Reminders.RunCycle)
		}

		// Response verification queue
		responses := api.Group("/responses")
		{
			responses.GET("", ctrl.Responses.GetResponses)
			responses.POST("/:id/verify", ctrl.Responses.Verify)
		}

		// Audit log
		api.GET("/logs", controllers.GetSystemLogs)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}

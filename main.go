package main

import (
	"fmt"
	"log"
	"os"

	"debtflow-backend/config"
	"debtflow-backend/controllers"
	"debtflow-backend/models"
	"debtflow-backend/repository"
	"debtflow-backend/routes"
	"debtflow-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.InitLogger()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Account{},
		&models.Customer{},
		&models.Debt{},
		&models.MessageTemplate{},
		&models.ReminderSettings{},
		&models.Reminder{},
		&models.ReminderResponse{},
		&models.SystemLog{},
		&models.ChannelQuota{},
	)
}

func main() {
	defer config.Logger.Sync()

	accounts := repository.NewAccountRepository(config.DB)
	customers := repository.NewCustomerRepository(config.DB)
	debts := repository.NewDebtRepository(config.DB)
	templates := repository.NewTemplateRepository(config.DB)
	settings := repository.NewSettingsRepository(config.DB)
	ledger := repository.NewReminderRepository(config.DB)
	responses := repository.NewResponseRepository(config.DB)
	quotas := repository.NewQuotaRepository(config.DB)
	systemLogs := repository.NewSystemLogRepository(config.DB)

	audit := services.NewAuditLogger(systemLogs, config.Logger)
	quota := services.NewQuotaManager(quotas)

	senders := map[models.Channel]services.ChannelSender{
		models.ChannelWhatsApp: services.NewWhatsAppSender(),
	}
	emailSender, err := services.NewEmailSender()
	if err != nil {
		config.Logger.Warn("email channel disabled", zap.Error(err))
	} else {
		senders[models.ChannelEmail] = emailSender
	}

	scheduler := services.NewReminderScheduler(services.SchedulerDeps{
		Accounts:        accounts,
		Customers:       customers,
		Debts:           debts,
		Templates:       templates,
		Settings:        settings,
		Ledger:          ledger,
		Quota:           quota,
		Audit:           audit,
		Senders:         senders,
		Logger:          config.Logger,
		CompanyName:     os.Getenv("COMPANY_NAME"),
		ResponseBaseURL: os.Getenv("RESPONSE_BASE_URL"),
	})
	if _, err := scheduler.StartScheduler(); err != nil {
		log.Fatalf("failed to start reminder scheduler: %v", err)
	}

	correlator := services.NewResponseCorrelator(ledger, responses, debts, audit, config.Logger)

	r := routes.SetupRouter(routes.Controllers{
		Templates: &controllers.TemplateController{Audit: audit},
		Settings:  &controllers.SettingsController{Audit: audit},
		Reminders: &controllers.ReminderController{Scheduler: scheduler},
		Responses: &controllers.ResponseController{Correlator: correlator},
		Webhooks:  &controllers.WebhookController{Ledger: ledger},
	})
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

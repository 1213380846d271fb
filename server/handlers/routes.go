package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ttsguard/server/services"
)

// RegisterRoutes регистрирует все маршруты API в Gin роутере
func RegisterRoutes(router *gin.Engine, registry *services.Registry) {
	clientHandler := NewClientHandler(registry.Clients, registry.Finance)
	buildingHandler := NewBuildingHandler(registry.Buildings)
	inspectionHandler := NewInspectionHandler(registry.Inspections)
	complaintHandler := NewComplaintHandler(registry.Complaints)
	complianceHandler := NewComplianceHandler(registry.Compliance)
	financeHandler := NewFinanceHandler(registry.Finance)
	dashboardHandler := NewDashboardHandler(registry.Dashboard)
	reportHandler := NewReportHandler(registry.Reports)

	// Health check endpoint - простой эндпоинт без зависимостей
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "ttsguard",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")

	clientsAPI := api.Group("/clients")
	{
		clientsAPI.GET("", clientHandler.HandleList)
		clientsAPI.POST("", clientHandler.HandleCreate)
		clientsAPI.GET("/:id", clientHandler.HandleGet)
		clientsAPI.GET("/:id/buildings", clientHandler.HandleBuildings)
		clientsAPI.GET("/:id/finances", clientHandler.HandleFinances)
	}

	buildingsAPI := api.Group("/buildings")
	{
		buildingsAPI.GET("", buildingHandler.HandleList)
		buildingsAPI.POST("", buildingHandler.HandleCreate)
		buildingsAPI.GET("/:id", buildingHandler.HandleDetails)
		buildingsAPI.POST("/:id/contracts", buildingHandler.HandleCreateContract)
		buildingsAPI.GET("/:id/contracts/active", buildingHandler.HandleActiveContract)
		buildingsAPI.POST("/:id/equipment", buildingHandler.HandleAddEquipment)
		buildingsAPI.GET("/:id/equipment", buildingHandler.HandleEquipment)
	}

	inspectionsAPI := api.Group("/inspections")
	{
		inspectionsAPI.POST("", inspectionHandler.HandleRecord)
		inspectionsAPI.GET("/recent", inspectionHandler.HandleRecent)
		inspectionsAPI.GET("/month", inspectionHandler.HandleByMonth)
		inspectionsAPI.POST("/scheduled", inspectionHandler.HandleSchedule)
		inspectionsAPI.GET("/scheduled", inspectionHandler.HandleScheduled)
		inspectionsAPI.PATCH("/scheduled/:id", inspectionHandler.HandleUpdateSchedule)
		inspectionsAPI.GET("/:id", inspectionHandler.HandleGet)
	}

	complaintsAPI := api.Group("/complaints")
	{
		complaintsAPI.GET("", complaintHandler.HandleList)
		complaintsAPI.GET("/month", complaintHandler.HandleByMonth)
		complaintsAPI.POST("", complaintHandler.HandleCreate)
		complaintsAPI.GET("/ticket/:ticket", complaintHandler.HandleGetByTicket)
		complaintsAPI.GET("/:id", complaintHandler.HandleGet)
		complaintsAPI.PATCH("/:id/status", complaintHandler.HandleUpdateStatus)
	}

	complianceAPI := api.Group("/compliance")
	{
		complianceAPI.GET("", complianceHandler.HandleList)
		complianceAPI.GET("/overdue", complianceHandler.HandleOverdue)
		complianceAPI.GET("/due-soon", complianceHandler.HandleDueSoon)
	}

	financeAPI := api.Group("/finance")
	{
		financeAPI.GET("/summary", financeHandler.HandleSummary)
		financeAPI.GET("/breakdown", financeHandler.HandleBreakdown)
		financeAPI.GET("/outstanding", financeHandler.HandleOutstanding)
		financeAPI.GET("/payments", financeHandler.HandlePaymentHistory)
		financeAPI.POST("/payments", financeHandler.HandleRecordPayment)
		financeAPI.GET("/payments/:id", financeHandler.HandleGetPayment)
		financeAPI.GET("/revenue", financeHandler.HandleMonthlyRevenue)
	}

	api.GET("/dashboard", dashboardHandler.HandleDashboard)

	reportsAPI := api.Group("/reports")
	{
		reportsAPI.GET("/compliance", reportHandler.HandleComplianceReport)
		reportsAPI.GET("/finance", reportHandler.HandleFinanceReport)
	}
}

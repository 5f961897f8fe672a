package routers

import (
	"adminconsole/controllers"
	"adminconsole/middlewares"
	"adminconsole/models"

	"github.com/gin-gonic/gin"
)

// Route mounts the console API on a gin engine. api must be fully wired.
func Route(api *controllers.API) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), CORS())

	auth := middlewares.Auth(api.Sessions, api.Log)
	finance := middlewares.RequireRole(models.Accounting)
	courier := middlewares.RequireRole(models.Courier)

	router.POST("/api/login", api.Authenticate)
	router.GET("/api/check-session", auth, api.CheckSession)
	router.GET("/api/logout", auth, api.Logout)

	v := router.Group("/api/views")
	v.Use(auth)
	{
		v.GET("", api.GetViews)
		v.GET("/:view", api.GetView)
		v.POST("/:view", api.CreateRecord)
		v.DELETE("/:view/:id", api.DeleteRecord)
		v.GET("/:view/preferences", api.GetPreferences)
		v.PUT("/:view/preferences", api.SavePreferences)
	}

	budgets := router.Group("/api/budgets")
	budgets.Use(auth, finance)
	{
		budgets.POST("/:id/approve", api.ApproveBudget)
	}

	loans := router.Group("/api/loans")
	loans.Use(auth, finance)
	{
		loans.POST("/quote", api.QuoteLoan)
		loans.POST("/:id/mark-as-paid", api.MarkLoanPaid)
	}

	returns := router.Group("/api/return-items")
	returns.Use(auth, courier)
	{
		returns.PUT("/:id/approve", api.ApproveReturn)
		returns.PUT("/:id/reject", api.RejectReturn)
	}

	return router
}

// CORS Cross Origin Resource Sharing
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, "+
			"Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

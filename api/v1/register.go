package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ServerInterface is implemented by the handlers package.
type ServerInterface interface {
	ListCalls(c *gin.Context, params ListCallsParams)
	GetCall(c *gin.Context, id int)
	CreateCall(c *gin.Context)
	ReplaceCall(c *gin.Context, id int)
	PatchCall(c *gin.Context, id int)
	DeleteCall(c *gin.Context, id int)
	GetBackupStatus(c *gin.Context)
	TriggerBackup(c *gin.Context)
	GetHealth(c *gin.Context)
}

// RegisterHandlers attaches all API routes to the router group.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	router.GET("/calls", withListParams(si.ListCalls))
	router.POST("/calls", si.CreateCall)
	router.GET("/calls/:id", withCallID(si.GetCall))
	router.PUT("/calls/:id", withCallID(si.ReplaceCall))
	router.PATCH("/calls/:id", withCallID(si.PatchCall))
	router.DELETE("/calls/:id", withCallID(si.DeleteCall))
	router.GET("/backup", si.GetBackupStatus)
	router.POST("/backup", si.TriggerBackup)
	router.GET("/health", si.GetHealth)
}

// withCallID parses the :id path parameter before delegating.
func withCallID(fn func(*gin.Context, int)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, Error{Error: "call id must be an integer"})
			return
		}
		fn(c, id)
	}
}

// withListParams binds the query parameters before delegating.
func withListParams(fn func(*gin.Context, ListCallsParams)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params ListCallsParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, Error{Error: "invalid query parameters"})
			return
		}
		fn(c, params)
	}
}

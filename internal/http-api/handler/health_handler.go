package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterHealth(router *gin.RouterGroup) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type homeHandler struct{}

func newHomeHandler() *homeHandler {
	return &homeHandler{}
}

func registerHomeRoutes(engine *gin.Engine) {
	h := newHomeHandler()
	engine.GET("/", h.getHome)
	engine.GET("/health", h.getHealth)
}

func (h *homeHandler) getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Garage Invoice API"})
}

func (h *homeHandler) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

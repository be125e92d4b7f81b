package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version reported by the descriptor and health endpoints.
const Version = "4.0.0"

// Root returns the static capability descriptor
// @Summary Service descriptor
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "🎮 Dynamic Mini-Game Learning Hub is LIVE!",
		"version": Version,
		"features": []string{
			"🎯 True on-the-spot game generation via LLM",
			"🎨 Unique game mechanics for each topic",
			"🧠 Concept-based learning",
			"♿ Disability-aware adaptations",
			"🌟 No hardcoded templates",
		},
	})
}

// Health returns the static liveness payload
// @Summary Liveness check
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": Version,
		"type":    "dynamic-mini-games",
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soulpatterns-backend/services"
	"soulpatterns-backend/utils"
)

// GenerateDesignInput defines the expected JSON structure for a text prompt
type GenerateDesignInput struct {
	Prompt string `json:"prompt" binding:"required"`
}

// TraceInput defines the expected JSON structure for a stencil trace
type TraceInput struct {
	Image string `json:"image" binding:"required"`
}

// TryOnInput defines the expected JSON structure for a try-on render
type TryOnInput struct {
	Image    string `json:"image" binding:"required"`
	BodyPart string `json:"bodyPart" binding:"required"`
}

// ChatInput defines the expected JSON structure for an assistant message
type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// DesignController exposes the generative design collaborator. Every
// endpoint returns the computed image directly, whether it gets saved to
// the gallery is a separate request, so a failed save never hides a result.
type DesignController struct {
	designer *services.DesignerService
}

func NewDesignController(designer *services.DesignerService) *DesignController {
	return &DesignController{designer: designer}
}

func (dc *DesignController) available(c *gin.Context) bool {
	if dc.designer == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Design generation is not configured. Set GEMINI_API_KEY.")
		return false
	}
	return true
}

// GenerateDesign turns a text idea into a design image.
func (dc *DesignController) GenerateDesign(c *gin.Context) {
	if !dc.available(c) {
		return
	}
	var input GenerateDesignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	image, err := dc.designer.GenerateFromPrompt(c.Request.Context(), input.Prompt)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Could not generate the design. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": image})
}

// CreateTrace converts a design into a line-art stencil.
func (dc *DesignController) CreateTrace(c *gin.Context) {
	if !dc.available(c) {
		return
	}
	var input TraceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	image, err := dc.designer.CreateTrace(c.Request.Context(), input.Image)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Could not create the stencil. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": image})
}

// TryOn renders the design on a body part.
func (dc *DesignController) TryOn(c *gin.Context) {
	if !dc.available(c) {
		return
	}
	var input TryOnInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	image, err := dc.designer.TryOn(c.Request.Context(), input.Image, input.BodyPart)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Could not render the try-on. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": image})
}

// GetTipOfTheDay returns the cached daily tip for the home view.
func (dc *DesignController) GetTipOfTheDay(c *gin.Context) {
	if !dc.available(c) {
		return
	}
	tip, err := dc.designer.TipOfTheDay(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Could not fetch today's tip.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tip": tip})
}

// Chat forwards one message to the mentor assistant.
func (dc *DesignController) Chat(c *gin.Context) {
	if !dc.available(c) {
		return
	}
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reply, err := dc.designer.Chat(c.Request.Context(), input.Message)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "The assistant is unavailable. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

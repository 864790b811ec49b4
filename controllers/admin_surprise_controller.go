package controllers

import (
	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
)

// CreateSurpriseTemplateRequest defines a reward the loyalty claim can mint.
type CreateSurpriseTemplateRequest struct {
	Name         string  `json:"name" binding:"required,min=3,max=100"`
	Description  string  `json:"description" binding:"max=255"`
	Type         string  `json:"type" binding:"required,oneof=flat percent"`
	Value        float64 `json:"value" binding:"required,gt=0"`
	MaxDiscount  float64 `json:"max_discount"`
	MinOrder     float64 `json:"min_order"`
	ValidityDays int     `json:"validity_days" binding:"required,min=1,max=365"`
}

// CreateSurpriseTemplate adds a reward to the surprise pool.
func CreateSurpriseTemplate(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var req CreateSurpriseTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if req.Type == models.CouponTypePercent && req.Value > 100 {
		utils.BadRequest(c, "Percent rewards cannot exceed 100", nil)
		return
	}

	template := models.SurpriseTemplate{
		Name:         req.Name,
		Description:  req.Description,
		Type:         req.Type,
		Value:        req.Value,
		MaxDiscount:  req.MaxDiscount,
		MinOrder:     req.MinOrder,
		ValidityDays: req.ValidityDays,
		Active:       true,
	}
	if err := config.DB.Create(&template).Error; err != nil {
		utils.LogError("Failed to create surprise template: %v", err)
		utils.InternalServerError(c, "Failed to create surprise template", nil)
		return
	}

	utils.LogInfo("Surprise template %d (%s) created", template.ID, template.Name)
	utils.Created(c, "Surprise template created", gin.H{"template": template})
}

// ListSurpriseTemplates shows the whole pool, active or not.
func ListSurpriseTemplates(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var templates []models.SurpriseTemplate
	if err := config.DB.Order("created_at desc").Find(&templates).Error; err != nil {
		utils.LogError("Failed to list surprise templates: %v", err)
		utils.InternalServerError(c, "Failed to fetch surprise templates", nil)
		return
	}
	utils.Success(c, "Surprise templates fetched successfully", gin.H{"templates": templates})
}

// DeactivateSurpriseTemplate removes a template from the claimable pool
// without touching coupons already minted from it.
func DeactivateSurpriseTemplate(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var template models.SurpriseTemplate
	if err := config.DB.First(&template, c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Surprise template not found")
		return
	}

	if err := config.DB.Model(&template).Update("active", false).Error; err != nil {
		utils.LogError("Failed to deactivate surprise template %d: %v", template.ID, err)
		utils.InternalServerError(c, "Failed to deactivate surprise template", nil)
		return
	}
	utils.Success(c, "Surprise template deactivated", gin.H{"id": template.ID})
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maisonember/restaurant-site/models"
	"github.com/maisonember/restaurant-site/store"
	"github.com/maisonember/restaurant-site/utils"
)

type ContentController struct {
	Store *store.ContentStore
}

func NewContentController(contentStore *store.ContentStore) *ContentController {
	return &ContentController{Store: contentStore}
}

// GetContent -> GET /api/content
func (cc *ContentController) GetContent(c *gin.Context) {
	doc, err := cc.Store.Get()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ReplaceContent -> PUT /api/admin/content
// Whole-document replace; the store validates before touching disk.
func (cc *ContentController) ReplaceContent(c *gin.Context) {
	var doc models.ContentDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := cc.Store.Replace(doc); err != nil {
		var invalid *models.InvalidContentError
		if errors.As(err, &invalid) {
			utils.RespondError(c, http.StatusBadRequest, err)
		} else {
			utils.ErrorLogger.Printf("Replacing content failed: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	utils.InfoLogger.Printf("Content document replaced by admin")
	utils.RespondJSON(c, http.StatusOK, "Content updated", nil)
}

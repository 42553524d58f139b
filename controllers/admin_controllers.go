package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maisonember/restaurant-site/config"
	"github.com/maisonember/restaurant-site/models"
	"github.com/maisonember/restaurant-site/store"
	"github.com/maisonember/restaurant-site/utils"
)

type AdminController struct {
	Cfg     *config.Config
	Records *store.RecordStore
}

func NewAdminController(cfg *config.Config, records *store.RecordStore) *AdminController {
	return &AdminController{Cfg: cfg, Records: records}
}

type loginRequest struct {
	Password string `form:"password" json:"password"`
}

// Login -> POST /api/admin/login
// Exchanges the admin password for a session token.
func (ac *AdminController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !ac.Cfg.CheckAdminPassword(req.Password) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("wrong password"))
		return
	}

	token, err := utils.GenerateAdminToken()
	if err != nil {
		utils.ErrorLogger.Printf("Token generation failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not create session"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logged in", gin.H{"token": token})
}

// ListReservations -> GET /api/admin/reservations
func (ac *AdminController) ListReservations(c *gin.Context) {
	ac.list(c, models.CollectionReservations)
}

// ListOrders -> GET /api/admin/orders
func (ac *AdminController) ListOrders(c *gin.Context) {
	ac.list(c, models.CollectionOrders)
}

func (ac *AdminController) list(c *gin.Context, col models.Collection) {
	records, err := ac.Records.Load(col)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []models.Record{}
	}
	utils.RespondJSON(c, http.StatusOK, "List of "+string(col), records)
}

// UpdateReservationStatus -> POST /api/admin/reservations/:id/status
func (ac *AdminController) UpdateReservationStatus(c *gin.Context) {
	ac.updateStatus(c, models.CollectionReservations)
}

// UpdateOrderStatus -> POST /api/admin/orders/:id/status
func (ac *AdminController) UpdateOrderStatus(c *gin.Context) {
	ac.updateStatus(c, models.CollectionOrders)
}

type statusRequest struct {
	Status string `form:"status" json:"status"`
}

func (ac *AdminController) updateStatus(c *gin.Context, col models.Collection) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid record id"))
		return
	}

	var req statusRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := ac.Records.SetStatus(col, id, req.Status); err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidStatus):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, store.ErrNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		default:
			utils.ErrorLogger.Printf("Status update for %s #%d failed: %v", col, id, err)
			utils.RespondError(c, http.StatusInternalServerError, errors.New("could not update status, please try again"))
		}
		return
	}

	utils.InfoLogger.Printf("Admin set %s #%d to %q", col, id, req.Status)
	utils.RespondJSON(c, http.StatusOK, "Status updated", gin.H{"id": id, "status": req.Status})
}

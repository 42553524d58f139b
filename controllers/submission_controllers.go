package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maisonember/restaurant-site/models"
	"github.com/maisonember/restaurant-site/services"
	"github.com/maisonember/restaurant-site/utils"
)

type SubmissionController struct {
	Service *services.SubmissionService
}

func NewSubmissionController(service *services.SubmissionService) *SubmissionController {
	return &SubmissionController{Service: service}
}

// Both endpoints accept JSON and form-encoded bodies; gin picks the binding
// from the Content-Type.
type ReservationRequest struct {
	FullName        string `form:"full_name" json:"full_name"`
	Email           string `form:"email" json:"email"`
	Phone           string `form:"phone" json:"phone"`
	ReservationDate string `form:"reservation_date" json:"reservation_date"`
	ReservationTime string `form:"reservation_time" json:"reservation_time"`
	Guests          string `form:"guests" json:"guests"`
	Occasion        string `form:"occasion" json:"occasion"`
	Notes           string `form:"notes" json:"notes"`
}

func (r ReservationRequest) payload() map[string]string {
	return map[string]string{
		"full_name":        r.FullName,
		"email":            r.Email,
		"phone":            r.Phone,
		"reservation_date": r.ReservationDate,
		"reservation_time": r.ReservationTime,
		"guests":           r.Guests,
		"occasion":         r.Occasion,
		"notes":            r.Notes,
	}
}

type OrderRequest struct {
	FullName     string `form:"full_name" json:"full_name"`
	Phone        string `form:"phone" json:"phone"`
	Email        string `form:"email" json:"email"`
	PickupTime   string `form:"pickup_time" json:"pickup_time"`
	OrderDetails string `form:"order_details" json:"order_details"`
	Notes        string `form:"notes" json:"notes"`
}

func (r OrderRequest) payload() map[string]string {
	return map[string]string{
		"full_name":     r.FullName,
		"phone":         r.Phone,
		"email":         r.Email,
		"pickup_time":   r.PickupTime,
		"order_details": r.OrderDetails,
		"notes":         r.Notes,
	}
}

// CreateReservation -> POST /api/reservations
func (sc *SubmissionController) CreateReservation(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	sc.submit(c, models.CollectionReservations, req.payload(),
		"Thank you! Your reservation request has been received.")
}

// CreateOrder -> POST /api/orders
func (sc *SubmissionController) CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	sc.submit(c, models.CollectionOrders, req.payload(),
		"Thank you! Your order has been received.")
}

func (sc *SubmissionController) submit(c *gin.Context, col models.Collection, payload map[string]string, message string) {
	sub, err := sc.Service.Submit(col, payload)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			utils.RespondError(c, http.StatusBadRequest, vErr)
			return
		}
		utils.ErrorLogger.Printf("Storing %s failed: %v", col, err)
		utils.RespondError(c, http.StatusInternalServerError,
			errors.New("could not save your submission, please try again"))
		return
	}

	// 201 in both notification outcomes: the record is durably stored.
	c.JSON(http.StatusCreated, gin.H{
		"ok":         true,
		"message":    message,
		"email_sent": sub.EmailSent,
		"id":         sub.Record.ID,
	})
}

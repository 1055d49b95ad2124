package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warinth/barlink-backend/config"
	"github.com/warinth/barlink-backend/middlewares"
	"github.com/warinth/barlink-backend/models"
	"github.com/warinth/barlink-backend/services"
	"github.com/warinth/barlink-backend/sessions"
	"github.com/warinth/barlink-backend/utils"
)

type CheckinController struct {
	Identity *services.IdentityService
	Points   *services.PointsService
	Sessions *sessions.Store
}

func NewCheckinController(identity *services.IdentityService, points *services.PointsService, store *sessions.Store) *CheckinController {
	return &CheckinController{Identity: identity, Points: points, Sessions: store}
}

// Login -> check-in tamu yang sudah pernah daftar.
func (cc *CheckinController) Login(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
		Table string `json:"table" binding:"required"`
		Shop  string `json:"shop"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer, err := cc.Identity.ResolveByPhone(req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPhone):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrCustomerNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		default:
			utils.ErrorLogger.Printf("resolve phone: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, errors.New("server error"))
		}
		return
	}

	cc.finishCheckin(c, http.StatusOK, "Check-in berhasil", customer, req.Table, req.Shop)
}

// Register -> registrasi tamu baru lalu langsung check-in.
func (cc *CheckinController) Register(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
		Name  string `json:"name" binding:"required"`
		Table string `json:"table" binding:"required"`
		Shop  string `json:"shop"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer, err := cc.Identity.Create(req.Phone, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPhone), errors.Is(err, services.ErrNameRequired):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrPhoneTaken):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.ErrorLogger.Printf("create customer: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, errors.New("server error"))
		}
		return
	}

	utils.InfoLogger.Printf("Customer registered (ID=%d)", customer.ID)
	cc.finishCheckin(c, http.StatusCreated, "Registrasi berhasil", customer, req.Table, req.Shop)
}

// finishCheckin menulis ScanEvent untuk meja bernomor, membuat session, dan
// menembak award poin tanpa menunggu. Meja yang belum di-provision tidak
// membatalkan check-in: identitas sudah resolve, tamu cukup diberi notice.
func (cc *CheckinController) finishCheckin(c *gin.Context, code int, message string, customer *models.Customer, tableLabel, shopLabel string) {
	tableID := services.ParseTableID(tableLabel)

	warning := ""
	if tableID != nil {
		if err := cc.Identity.RecordScan(customer.ID, *tableID); err != nil {
			if errors.Is(err, services.ErrTableNotProvisioned) {
				warning = err.Error()
				tableID = nil
			} else {
				utils.ErrorLogger.Printf("record scan: %v", err)
				utils.RespondError(c, http.StatusInternalServerError, errors.New("server error"))
				return
			}
		}
	}

	id := cc.Sessions.Create(sessions.Session{
		CustomerID: customer.ID,
		Name:       customer.Name,
		Phone:      customer.PhoneNumber,
		ShopLabel:  shopLabel,
		TableLabel: tableLabel,
		TableID:    tableID,
	})
	c.SetCookie(middlewares.SessionCookieName, id, int(config.SessionTTL().Seconds()), "/", "", false, true)

	// Best-effort: kegagalan award tidak boleh menahan tamu dari landing page.
	go cc.awardDailyPoint(customer.ID, tableID)

	utils.RespondJSON(c, code, message, gin.H{
		"customer_id": customer.ID,
		"name":        customer.Name,
		"shop":        shopLabel,
		"table_label": tableLabel,
		"table_id":    tableID,
		"warning":     warning,
		"redirect":    "/checkin/landing",
	})
}

func (cc *CheckinController) awardDailyPoint(customerID uint, tableID *uint) {
	if err := cc.Points.EnsureAccount(customerID); err != nil {
		utils.ErrorLogger.Printf("ensure points account (customer %d): %v", customerID, err)
		return
	}
	if _, err := cc.Points.AwardIfFirstToday(customerID, tableID); err != nil {
		utils.ErrorLogger.Printf("award daily point (customer %d): %v", customerID, err)
	}
}

// Landing -> data halaman sambutan. Read-only: semua dari session plus query
// poin.
func (cc *CheckinController) Landing(c *gin.Context) {
	sess, ok := middlewares.GetSession(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("belum check-in"))
		return
	}

	total, err := cc.Points.TotalPoints(sess.CustomerID)
	if err != nil {
		utils.ErrorLogger.Printf("total points: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("server error"))
		return
	}
	checkedInToday, err := cc.Points.AwardedToday(sess.CustomerID)
	if err != nil {
		utils.ErrorLogger.Printf("awarded today: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Landing data", gin.H{
		"name":             sess.Name,
		"phone":            sess.Phone,
		"shop":             sess.ShopLabel,
		"table_label":      sess.TableLabel,
		"table_id":         sess.TableID,
		"total_points":     total,
		"checked_in_today": checkedInToday,
	})
}

// Logout menghancurkan session dan menghapus cookie.
func (cc *CheckinController) Logout(c *gin.Context) {
	if id, err := c.Cookie(middlewares.SessionCookieName); err == nil && id != "" {
		cc.Sessions.Destroy(id)
	}
	c.SetCookie(middlewares.SessionCookieName, "", -1, "/", "", false, true)
	utils.RespondJSON(c, http.StatusOK, "Logout berhasil", nil)
}

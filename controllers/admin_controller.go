package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/warinth/barlink-backend/config"
	"github.com/warinth/barlink-backend/services"
	"github.com/warinth/barlink-backend/utils"
)

// OrderInfoFetcher bagian kecil dari OdooClient yang dibutuhkan contact
// lookup; test memakai fake.
type OrderInfoFetcher interface {
	FetchOrderInfo(orderID int) (*services.UnpaidOrder, error)
}

type AdminController struct {
	Chat     *services.ChatService
	Contacts *services.ContactService
	Orders   OrderInfoFetcher
}

func NewAdminController(chat *services.ChatService, contacts *services.ContactService, orders OrderInfoFetcher) *AdminController {
	return &AdminController{Chat: chat, Contacts: contacts, Orders: orders}
}

// Login memeriksa kredensial dari .env lalu menerbitkan token moderator.
// Tanpa hashing: sistem satu venue, kredensial hidup di environment.
func (ac *AdminController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user := config.AdminUser()
	pass := config.AdminPass()
	if user == "" || req.Username != user || req.Password != pass {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("username atau password salah"))
		return
	}

	token, err := utils.GenerateAdminToken(req.Username)
	if err != nil {
		utils.ErrorLogger.Printf("generate admin token: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login berhasil", gin.H{"token": token})
}

// DeleteMessage -> soft delete satu pesan. Idempoten: menghapus pesan yang
// sudah terhapus tetap dijawab sukses.
func (ac *AdminController) DeleteMessage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("chat_id"))
	if err != nil || id < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("chat_id tidak valid"))
		return
	}

	if err := ac.Chat.SoftDeleteOne(uint(id)); err != nil {
		utils.ErrorLogger.Printf("soft delete chat %d: %v", id, err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Message deleted", gin.H{"chat_id": id})
}

// ClearMessages -> soft delete semua pesan yang masih tampil.
func (ac *AdminController) ClearMessages(c *gin.Context) {
	if err := ac.Chat.SoftDeleteAll(); err != nil {
		utils.ErrorLogger.Printf("clear chat: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Chat cleared", nil)
}

// GetChatAudit -> pembacaan moderasi; include_deleted=true menampilkan juga
// baris yang sudah di-soft-delete beserta flag-nya.
func (ac *AdminController) GetChatAudit(c *gin.Context) {
	limit := clampLimit(c.Query("limit"), 100, 500)

	var (
		messages interface{}
		err      error
	)
	if c.DefaultQuery("include_deleted", "false") == "true" {
		messages, err = ac.Chat.ListAudit(limit)
	} else {
		messages, err = ac.Chat.ListRecent(limit)
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Chat audit", messages)
}

// ContactLookup membuka nama/nomor tamu yang terakhir scan meja dari satu
// order. Digerbangi PIN terpisah dari token moderator.
func (ac *AdminController) ContactLookup(c *gin.Context) {
	var req struct {
		OrderID int    `json:"order_id" binding:"required"`
		PIN     string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pin := config.AdminContactPIN()
	if pin == "" || req.PIN != pin {
		utils.RespondError(c, http.StatusForbidden, errors.New("PIN tidak valid"))
		return
	}

	order, err := ac.Orders.FetchOrderInfo(req.OrderID)
	if err != nil {
		utils.ErrorLogger.Printf("fetch order info %d: %v", req.OrderID, err)
		utils.RespondError(c, http.StatusBadGateway, errors.New("POS upstream tidak bisa dihubungi"))
		return
	}
	if order == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order tidak ditemukan"))
		return
	}

	contacts := []services.Contact{}
	if order.TableNo != nil {
		contacts, err = ac.Contacts.LatestContactsByTable(uint(*order.TableNo), 5)
		if err != nil {
			utils.ErrorLogger.Printf("contact lookup table %d: %v", *order.TableNo, err)
			utils.RespondError(c, http.StatusInternalServerError, errors.New("server error"))
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Contact info", gin.H{
		"order":    order,
		"contacts": contacts,
	})
}

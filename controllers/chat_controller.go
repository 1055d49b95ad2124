package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/warinth/barlink-backend/middlewares"
	"github.com/warinth/barlink-backend/services"
	"github.com/warinth/barlink-backend/sessions"
	"github.com/warinth/barlink-backend/utils"
)

type ChatController struct {
	Chat     *services.ChatService
	Sessions *sessions.Store
}

func NewChatController(chat *services.ChatService, store *sessions.Store) *ChatController {
	return &ChatController{Chat: chat, Sessions: store}
}

// PostMessage -> kirim pesan ke big screen. Identitas diambil dari session;
// payload boleh membawa customer_id/table_id eksplisit sebagai fallback untuk
// klien tanpa session (mis. big screen operator).
func (cc *ChatController) PostMessage(c *gin.Context) {
	var req struct {
		Message    string `json:"message"`
		CustomerID *uint  `json:"customer_id"`
		TableID    *uint  `json:"table_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customerID := req.CustomerID
	tableID := req.TableID
	if id, err := c.Cookie(middlewares.SessionCookieName); err == nil && id != "" {
		if sess, ok := cc.Sessions.Get(id); ok {
			cid := sess.CustomerID
			customerID = &cid
			if sess.TableID != nil {
				tableID = sess.TableID
			}
		}
	}

	chat, err := cc.Chat.Post(customerID, tableID, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.ErrorLogger.Printf("post chat: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("server error"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Message sent", chat)
}

// GetHistory -> pesan yang masih tampil, terbaru dulu. Dipakai big screen
// untuk initial paint dan untuk mengejar event yang terlewat.
func (cc *ChatController) GetHistory(c *gin.Context) {
	limit := clampLimit(c.Query("limit"), 50, 200)

	messages, err := cc.Chat.ListRecent(limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Chat history", messages)
}

// clampLimit parse query limit dengan default dan batas atas.
func clampLimit(raw string, def, max int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

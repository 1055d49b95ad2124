package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/warinth/barlink-backend/hub"
	"github.com/warinth/barlink-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // big screen dan dashboard jalan dari origin lain
	},
}

type ScreenController struct {
	Hub *hub.Hub
}

func NewScreenController(h *hub.Hub) *ScreenController {
	return &ScreenController{Hub: h}
}

// Handler meng-upgrade koneksi jadi subscriber real-time. Role hanya untuk
// logging; semua subscriber menerima semua event.
func (sc *ScreenController) Handler(c *gin.Context) {
	role := c.DefaultQuery("role", "screen")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade: %v", err)
		return
	}

	sc.Hub.RegisterClient(conn, role)
	utils.InfoLogger.Printf("screen client connected (role=%s)", role)

	go func() {
		defer sc.Hub.UnregisterClient(conn)
		for {
			// Subscriber tidak mengirim apa-apa; loop ini hanya mendeteksi
			// koneksi putus.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

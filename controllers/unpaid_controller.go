package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/warinth/barlink-backend/services"
	"github.com/warinth/barlink-backend/utils"
)

type UnpaidController struct {
	Cache *services.UnpaidCache
}

func NewUnpaidController(cache *services.UnpaidCache) *UnpaidController {
	return &UnpaidController{Cache: cache}
}

// DashboardUnpaidRow subset yang ditampilkan tabel dashboard.
type DashboardUnpaidRow struct {
	OrderID      int     `json:"orderId"`
	TableNo      *int    `json:"tableNo"`
	TableLabel   string  `json:"tableLabel"`
	AmountDue    float64 `json:"amountDue"`
	State        string  `json:"state"`
	DateOrderUTC *string `json:"dateOrderUtc"`
}

// GetUnpaidData -> feed dashboard meja belum bayar. Cache satu entry menahan
// laju RPC; meta menandai apakah respons dari cache.
func (uc *UnpaidController) GetUnpaidData(c *gin.Context) {
	limit := parseUnpaidLimit(c.Query("limit"))

	list, cached, err := uc.Cache.GetUnpaidOrders()
	if err != nil {
		utils.ErrorLogger.Printf("fetch unpaid orders: %v", err)
		utils.RespondError(c, http.StatusBadGateway, errors.New("POS upstream tidak bisa dihubungi"))
		return
	}

	if len(list) > limit {
		list = list[:limit]
	}

	rows := make([]DashboardUnpaidRow, 0, len(list))
	for _, r := range list {
		rows = append(rows, DashboardUnpaidRow{
			OrderID:      r.OrderID,
			TableNo:      r.TableNo,
			TableLabel:   r.TableLabel,
			AmountDue:    r.AmountDue,
			State:        r.State,
			DateOrderUTC: r.DateOrderUTC,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Unpaid orders", gin.H{
		"orders": rows,
		"meta": gin.H{
			"cached": cached,
			"count":  len(rows),
		},
	})
}

// parseUnpaidLimit clamp limit ke 1..1000, default 300.
func parseUnpaidLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 300
	}
	if n < 1 {
		return 1
	}
	if n > 1000 {
		return 1000
	}
	return n
}

package controllers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/warinth/barlink-backend/config"
	"github.com/warinth/barlink-backend/models"
	"github.com/warinth/barlink-backend/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables -> daftar meja yang sudah di-provision.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableQR -> PNG QR untuk tent card meja, menunjuk ke halaman check-in
// dengan shop dan label meja sudah terisi.
func (tc *TableController) GetTableQR(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	base := config.Getenv("PUBLIC_BASE_URL", "http://localhost:8080")
	shop := c.Query("shop")
	target := fmt.Sprintf("%s/checkin/login?shop=%s&table=%s",
		base, url.QueryEscape(shop), url.QueryEscape(table.Label))

	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

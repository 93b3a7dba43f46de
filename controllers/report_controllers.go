package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aadit2805/project3-group7-deploy-sub000/services"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

func (rc *ReportController) GetXReport(c *gin.Context) {
	sum, err := rc.Reports.XReport(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "X report", sum)
}

func (rc *ReportController) CloseDay(c *gin.Context) {
	managerID, ok := userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	closed, err := rc.Reports.ZReport(c.Request.Context(), managerID)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Z report", closed)
}

// GetSalesByItem
// Endpoint: GET /reports/sales?from=2006-01-02&to=2006-01-02 (both days inclusive)
func (rc *ReportController) GetSalesByItem(c *gin.Context) {
	from, err := time.ParseInLocation("2006-01-02", c.Query("from"), time.Local)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter 'from' must be YYYY-MM-DD"))
		return
	}
	to, err := time.ParseInLocation("2006-01-02", c.Query("to"), time.Local)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter 'to' must be YYYY-MM-DD"))
		return
	}
	if to.Before(from) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("'to' is before 'from'"))
		return
	}

	sales, err := rc.Reports.SalesByItem(c.Request.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sales by item", sales)
}

func (rc *ReportController) GetDayCloses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	closes, err := rc.Reports.DayCloses(c.Request.Context(), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Day closes", closes)
}

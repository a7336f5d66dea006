package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"pawhub/models"
	"pawhub/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminEarningsMonthHandler handles GET /admin/providers/:id/earnings?month=YYYY-MM.
func (h *HandlerBundle) AdminEarningsMonthHandler(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing month parameter", "expected ?month=YYYY-MM")
		return
	}
	row, err := h.EarningsService.MonthRow(c.Param("id"), month)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// AdminEarningsHistoryHandler handles GET /admin/providers/:id/earnings/history.
func (h *HandlerBundle) AdminEarningsHistoryHandler(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "12"))
	rows, err := h.EarningsService.History(c.Param("id"), months)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// AdminArrearsHandler handles GET /admin/providers/:id/arrears.
func (h *HandlerBundle) AdminArrearsHandler(c *gin.Context) {
	report, err := h.EarningsService.Arrears(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// AdminAdjustmentsHandler handles GET /admin/providers/:id/earnings/adjustments?month=YYYY-MM.
func (h *HandlerBundle) AdminAdjustmentsHandler(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing month parameter", "expected ?month=YYYY-MM")
		return
	}
	adjustments, err := h.EarningsService.Adjustments(c.Param("id"), month)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adjustments)
}

type collectionRequest struct {
	Month    string `json:"month" binding:"required"`
	AmountDa int    `json:"amountDa"`
	Note     string `json:"note"`
}

// AdminCollectionHandler handles POST /admin/providers/:id/collections/:op.
// The op segment selects collect-all, uncollect, set, add or subtract.
func (h *HandlerBundle) AdminCollectionHandler(c *gin.Context) {
	adminID, ok := ctxString(c, "adminID")
	if !ok {
		return
	}
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid collection payload", err.Error())
		return
	}

	providerID := c.Param("id")
	var (
		row *models.MonthlyEarnings
		err error
	)
	switch op := c.Param("op"); op {
	case "collect-all":
		row, err = h.EarningsService.CollectAll(adminID, providerID, req.Month, req.Note)
	case "uncollect":
		row, err = h.EarningsService.Uncollect(adminID, providerID, req.Month, req.Note)
	case "set":
		row, err = h.EarningsService.SetCollected(adminID, providerID, req.Month, req.AmountDa, req.Note)
	case "add":
		row, err = h.EarningsService.AddCollected(adminID, providerID, req.Month, req.AmountDa, req.Note)
	case "subtract":
		row, err = h.EarningsService.SubtractCollected(adminID, providerID, req.Month, req.AmountDa, req.Note)
	default:
		utils.JSONError(c, http.StatusBadRequest, "Unknown collection operation", fmt.Sprintf("unsupported op %q", op))
		return
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// AdminGlobalStatsHandler handles GET /admin/stats?kind=VET&month=YYYY-MM.
func (h *HandlerBundle) AdminGlobalStatsHandler(c *gin.Context) {
	stats, err := h.EarningsService.GlobalStats(models.ProviderKind(c.Query("kind")), c.Query("month"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AdminExportMonthHandler handles GET /admin/exports/commissions?kind=VET&month=YYYY-MM
// and streams an XLSX workbook.
func (h *HandlerBundle) AdminExportMonthHandler(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing month parameter", "expected ?month=YYYY-MM")
		return
	}
	data, err := h.EarningsService.ExportMonth(models.ProviderKind(c.Query("kind")), month)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=commissions-%s.xlsx", month))
	c.Data(http.StatusOK, xlsxContentType, data)
}

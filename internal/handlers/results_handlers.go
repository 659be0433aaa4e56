package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/epeers/sqglp/internal/models"
	"github.com/epeers/sqglp/internal/repository"
	"github.com/epeers/sqglp/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// downloadTimeLayout names the CSV attachment, e.g. sqglp_results_2024-05-01_09-30-00.csv
const downloadTimeLayout = "2006-01-02_15-04-05"

// ResultsHandler serves the result table and its derived views
type ResultsHandler struct {
	resultsSvc    *services.ResultsService
	technicalsSvc *services.TechnicalsService
}

// NewResultsHandler creates a new ResultsHandler
func NewResultsHandler(resultsSvc *services.ResultsService, technicalsSvc *services.TechnicalsService) *ResultsHandler {
	return &ResultsHandler{
		resultsSvc:    resultsSvc,
		technicalsSvc: technicalsSvc,
	}
}

// GetResults handles GET /results
// @Summary Get screening results
// @Description Return the latest result table, filtered and sorted. Defaults to every row by SQGLP_Score descending.
// @Tags results
// @Produce json
// @Param ticker query []string false "Ticker filter (repeatable or comma separated)" collectionFormat(multi)
// @Param sector query string false "Sector filter; All disables it"
// @Param min_score query number false "Minimum SQGLP_Score"
// @Param max_score query number false "Maximum SQGLP_Score"
// @Param sort query string false "Sort column" default(SQGLP_Score)
// @Param order query string false "asc or desc" default(desc)
// @Success 200 {object} models.ResultsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /results [get]
func (h *ResultsHandler) GetResults(c *gin.Context) {
	resp, ok := h.query(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadResults handles GET /results/download
// @Summary Download screening results as CSV
// @Description Same filters as GET /results, returned as a CSV attachment with the result table header
// @Tags results
// @Produce text/csv
// @Param ticker query []string false "Ticker filter" collectionFormat(multi)
// @Param sector query string false "Sector filter"
// @Param min_score query number false "Minimum SQGLP_Score"
// @Param max_score query number false "Maximum SQGLP_Score"
// @Param sort query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /results/download [get]
func (h *ResultsHandler) DownloadResults(c *gin.Context) {
	resp, ok := h.query(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("sqglp_results_%s.csv", time.Now().Format(downloadTimeLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	if err := repository.WriteResultsCSV(c.Writer, resp.Results); err != nil {
		log.Errorf("Failed to stream results CSV: %v", err)
	}
}

// GetSectors handles GET /sectors
// @Summary Sector distribution
// @Description Number of analyzed companies per sector, largest first
// @Tags sectors
// @Produce json
// @Success 200 {array} models.SectorCount
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /sectors [get]
func (h *ResultsHandler) GetSectors(c *gin.Context) {
	sectors, err := h.resultsSvc.Sectors(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sectors)
}

// GetSectorHeatmap handles GET /sectors/heatmap
// @Summary Sector heatmap
// @Description Mean of every numeric metric per sector
// @Tags sectors
// @Produce json
// @Success 200 {array} models.SectorHeatmapRow
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /sectors/heatmap [get]
func (h *ResultsHandler) GetSectorHeatmap(c *gin.Context) {
	rows, err := h.resultsSvc.SectorHeatmap(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetTechnicals handles GET /tickers/:ticker/technicals
// @Summary Technical indicators
// @Description Latest SMA(20), EMA(20), RSI(14) and MACD(12,26,9) from one year of daily closes. Missing values mean too little history.
// @Tags tickers
// @Produce json
// @Param ticker path string true "Ticker symbol, e.g. TCS.NS"
// @Success 200 {object} models.TechnicalsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /tickers/{ticker}/technicals [get]
func (h *ResultsHandler) GetTechnicals(c *gin.Context) {
	resp, err := h.technicalsSvc.Technicals(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		if !errors.Is(err, services.ErrInvalidQuery) && !errors.Is(err, services.ErrNoPriceData) {
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:   "upstream_error",
				Message: err.Error(),
			})
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetHistory handles GET /tickers/:ticker/history
// @Summary Score history
// @Description SQGLP_Score of a ticker in every stored run, oldest first. Requires PG_URL.
// @Tags tickers
// @Produce json
// @Param ticker path string true "Ticker symbol"
// @Success 200 {object} models.HistoryResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /tickers/{ticker}/history [get]
func (h *ResultsHandler) GetHistory(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	resp, err := h.resultsSvc.History(c.Request.Context(), ticker)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// query binds the filter parameters and runs them against the result table.
// On failure the error response has already been written.
func (h *ResultsHandler) query(c *gin.Context) (*models.ResultsResponse, bool) {
	var q models.ResultsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return nil, false
	}

	resp, err := h.resultsSvc.Query(c.Request.Context(), q)
	if err != nil {
		writeServiceError(c, err)
		return nil, false
	}
	return resp, true
}

// writeServiceError maps service sentinels onto HTTP statuses
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	case errors.Is(err, repository.ErrNoResultsFile):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "no analysis results have been written yet",
		})
	case errors.Is(err, services.ErrNoPriceData):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrHistoryUnavailable):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "unavailable",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

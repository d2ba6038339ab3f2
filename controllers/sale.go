package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"soulpatterns-backend/cache"
	"soulpatterns-backend/models"
	"soulpatterns-backend/repositories"
	"soulpatterns-backend/services"
	"soulpatterns-backend/store"
	"soulpatterns-backend/utils"
)

// CreateSaleInput defines the expected JSON structure for logging a sale
type CreateSaleInput struct {
	Amount float64 `json:"amount" binding:"required"`
	Date   string  `json:"date" binding:"required"` // YYYY-MM-DD
}

// SaleController serves the sales log and its aggregations. Aggregation is
// a pure function of the full sale set and the current date, computed over
// the view's mirror.
type SaleController struct {
	repo   *repositories.SaleRepository
	mirror *cache.Mirror[models.Sale]

	// now is swappable so aggregation endpoints are testable.
	now func() time.Time
}

func NewSaleController(storage *store.StorageContext) (*SaleController, error) {
	repo := repositories.NewSaleRepository(storage)
	mirror, err := cache.NewMirror(context.Background(), repo.List, storage.Bus)
	if err != nil {
		return nil, err
	}
	return &SaleController{repo: repo, mirror: mirror, now: time.Now}, nil
}

// GetSales returns the raw sale records.
func (sc *SaleController) GetSales(c *gin.Context) {
	c.JSON(http.StatusOK, sc.mirror.Items())
}

// CreateSale logs a new sale. Amounts must be positive; the sale id is
// time-based like the other caller-keyed collections.
func (sc *SaleController) CreateSale(c *gin.Context) {
	var input CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Amount <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Amount must be positive")
		return
	}
	if _, err := time.Parse(models.DateLayout, input.Date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	sale := models.Sale{
		ID:     strconv.FormatInt(sc.now().UnixMilli(), 10),
		Amount: input.Amount,
		Date:   input.Date,
	}
	if err := sc.repo.Save(c.Request.Context(), sale); err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	sc.mirror.Prepend(sale, func(existing models.Sale) bool { return existing.ID == sale.ID })
	c.JSON(http.StatusCreated, sale)
}

// GetSummary returns today / this week / this month totals.
func (sc *SaleController) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, services.SummarizeSales(sc.mirror.Items(), sc.now()))
}

// GetChart returns the revenue chart: seven daily buckets, or four weekly
// buckets with ?timeframe=month.
func (sc *SaleController) GetChart(c *gin.Context) {
	timeframe := c.DefaultQuery("timeframe", "week")
	switch timeframe {
	case "week":
		c.JSON(http.StatusOK, services.WeeklyChart(sc.mirror.Items(), sc.now()))
	case "month":
		c.JSON(http.StatusOK, services.MonthlyChart(sc.mirror.Items(), sc.now()))
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "timeframe must be week or month")
	}
}

// Close releases the view's mirror.
func (sc *SaleController) Close() {
	sc.mirror.Close()
}

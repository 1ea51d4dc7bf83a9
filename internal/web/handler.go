package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/KNICEX/price-alert/internal/entity"
	"github.com/KNICEX/price-alert/internal/repo"
	"github.com/KNICEX/price-alert/internal/service/monitor"
	"github.com/KNICEX/price-alert/internal/service/quotes"
	"github.com/KNICEX/price-alert/pkg/decimalx"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type AlertHandler struct {
	repo     repo.AlertRepo
	monitor  *monitor.AlertMonitor
	quoteSvc quotes.Service
}

func NewAlertHandler(alertRepo repo.AlertRepo, mon *monitor.AlertMonitor, quoteSvc quotes.Service) *AlertHandler {
	return &AlertHandler{
		repo:     alertRepo,
		monitor:  mon,
		quoteSvc: quoteSvc,
	}
}

type createAlertReq struct {
	Asset     string `json:"asset" binding:"required"`
	Direction string `json:"direction" binding:"required"`
	Threshold string `json:"threshold" binding:"required"`
	Recipient string `json:"recipient" binding:"required"`
}

type alertView struct {
	Asset     string `json:"asset"`
	Direction string `json:"direction"`
	Threshold string `json:"threshold"`
	Recipient string `json:"recipient"`
	CreatedAt string `json:"created_at"`
}

type eventView struct {
	FiredAt       string `json:"fired_at"`
	Asset         string `json:"asset"`
	Direction     string `json:"direction"`
	Threshold     string `json:"threshold"`
	ObservedPrice string `json:"observed_price"`
	Recipient     string `json:"recipient"`
	Currency      string `json:"currency"`
}

type quoteView struct {
	Asset     string `json:"asset"`
	Price     string `json:"price"`
	Change24h string `json:"change_24h"`
	MarketCap string `json:"market_cap"`
	Volume24h string `json:"volume_24h"`
	Currency  string `json:"currency"`
}

func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req createAlertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	threshold, err := decimal.NewFromString(req.Threshold)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "threshold is not a number"})
		return
	}
	rule, err := entity.NewAlertRule(req.Asset, threshold, entity.Direction(req.Direction), req.Recipient)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.repo.Add(rule)
	c.JSON(http.StatusCreated, toAlertView(rule))
}

func (h *AlertHandler) ListAlerts(c *gin.Context) {
	views := lo.Map(h.repo.Pending(), func(rule entity.AlertRule, _ int) alertView {
		return toAlertView(rule)
	})
	c.JSON(http.StatusOK, gin.H{"alerts": views})
}

// ClearAlerts drops pending rules only; /alerts/log has its own clear.
func (h *AlertHandler) ClearAlerts(c *gin.Context) {
	h.repo.ClearPending()
	c.Status(http.StatusNoContent)
}

func (h *AlertHandler) ListLog(c *gin.Context) {
	views := lo.Map(h.repo.Events(), func(event entity.AlertEvent, _ int) eventView {
		return eventView{
			FiredAt:       event.FiredAt.Format(time.DateTime),
			Asset:         event.Asset,
			Direction:     string(event.Direction),
			Threshold:     event.Threshold.String(),
			ObservedPrice: event.ObservedPrice.String(),
			Recipient:     event.Recipient,
			Currency:      event.Currency.Upper(),
		}
	})
	c.JSON(http.StatusOK, gin.H{"events": views})
}

func (h *AlertHandler) ClearLog(c *gin.Context) {
	h.repo.ClearLog()
	c.Status(http.StatusNoContent)
}

// Prices serves the snapshot of the most recent successful cycle; it
// never triggers a fetch of its own.
func (h *AlertHandler) Prices(c *gin.Context) {
	latest, lastUpdate := h.monitor.LatestQuotes()

	views := make(map[string]quoteView, len(latest))
	for asset, q := range latest {
		views[asset] = quoteView{
			Asset:     q.Asset,
			Price:     q.Price.String(),
			Change24h: q.Change24h.StringFixed(2),
			MarketCap: q.MarketCap.String(),
			Volume24h: q.Volume24h.String(),
			Currency:  q.Currency.Upper(),
		}
	}
	resp := gin.H{"prices": views}
	if !lastUpdate.IsZero() {
		resp["last_update"] = lastUpdate.Format(time.DateTime)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlertHandler) History(c *gin.Context) {
	asset := c.Param("id")
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return
	}

	points, err := h.quoteSvc.GetHistory(c.Request.Context(), asset, h.monitor.Currency(), days)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	type pointView struct {
		Time  string `json:"time"`
		Price string `json:"price"`
	}
	views := lo.Map(points, func(p quotes.PricePoint, _ int) pointView {
		return pointView{
			Time:  p.Time.UTC().Format(time.RFC3339),
			Price: p.Price.String(),
		}
	})

	trend := "flat"
	slope := decimalx.Slope(lo.Map(points, func(p quotes.PricePoint, _ int) decimal.Decimal {
		return p.Price
	}))
	if slope.IsPositive() {
		trend = "up"
	} else if slope.IsNegative() {
		trend = "down"
	}

	c.JSON(http.StatusOK, gin.H{
		"asset":  asset,
		"days":   days,
		"trend":  trend,
		"prices": views,
	})
}

func toAlertView(rule entity.AlertRule) alertView {
	return alertView{
		Asset:     rule.Asset,
		Direction: string(rule.Direction),
		Threshold: rule.Threshold.String(),
		Recipient: rule.Recipient,
		CreatedAt: rule.CreatedAt.Format(time.DateTime),
	}
}

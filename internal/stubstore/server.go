// Package stubstore is an in-memory stand-in for the remote ingredient
// store, speaking the same wire contract. It exists for development and
// hermetic integration tests; it is not the production backend and holds
// no durable state.
package stubstore

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shelflyfe/internal/monitoring"
)

// record is an ingredient as the store serializes it.
type record struct {
	ID                 string  `json:"_id"`
	SKU                string  `json:"sku"`
	Name               string  `json:"name"`
	Stock              int     `json:"stock"`
	Price              float64 `json:"price"`
	ExpiryDate         string  `json:"expiry_date"`
	Orders             int     `json:"orders"`
	MonthIncrease      string  `json:"monthIncrease"`
	YearIncrease       string  `json:"yearIncrease"`
	StockMeasurement   string  `json:"stock_measurement"`
	WarningStockAmount int     `json:"warningStockAmount"`
}

// createPayload is the add/update request body.
type createPayload struct {
	SKU        string  `json:"sku"`
	Name       string  `json:"name"`
	Stock      int     `json:"stock"`
	Price      float64 `json:"price"`
	Threshold  int     `json:"threshold"`
	Unit       string  `json:"unit"`
	CustomUnit string  `json:"customUnit"`
	ExpiryDate string  `json:"expiry_date"`
}

// resupplyRow is one row of the batch resupply request.
type resupplyRow struct {
	SKU             string  `json:"sku"`
	ID              int64   `json:"id"`
	IsNewIngredient bool    `json:"isNewIngredient"`
	Supplier        string  `json:"supplier"`
	Name            string  `json:"name"`
	Stock           int     `json:"stock"`
	Price           float64 `json:"price"`
	ExpiryDate      string  `json:"expiryDate"`
	CustomUnit      string  `json:"customUnit"`
	Threshold       int     `json:"threshold"`
	Unit            string  `json:"unit"`
}

// menuRecord is a menu item as the store serializes it.
type menuRecord struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Price       float64          `json:"price"`
	Ingredients []menuIngredient `json:"ingredients"`
}

type menuIngredient struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// expiringWindow mirrors the store's warning horizon for expiring stock.
const expiringWindow = 3 * 24 * time.Hour

// Server is the in-memory store.
type Server struct {
	router *gin.Engine

	mu          sync.Mutex
	ingredients map[string]record        // keyed by SKU
	menu        []menuRecord
	orders      []map[string]orderEntry

	// now is swappable so tests can pin the expiring-ingredients window.
	now func() time.Time
}

type orderEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NewServer creates an empty stub store.
func NewServer() *Server {
	s := &Server{
		router:      gin.New(),
		ingredients: make(map[string]record),
		now:         time.Now,
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/get-all-ingredients", s.handleList)
	s.router.POST("/add-ingredient", s.handleAdd)
	s.router.PUT("/update-ingredient", s.handleUpdate)
	s.router.DELETE("/delete-ingredient", s.handleDelete)
	s.router.POST("/resupply-ingredient-add", s.handleResupply)
	s.router.GET("/get-expiring-ingredients", s.handleExpiring)
	s.router.GET("/get-low-stock-ingredients", s.handleLowStock)
	s.router.GET("/get-all-menu-items", s.handleMenu)
	s.router.POST("/submit-orders", s.handleSubmitOrders)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(monitoring.Registry, promhttp.HandlerOpts{})))
}

// Router returns the gin router, for httptest servers.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// SeedIngredient loads one record from its wire fields, replacing any
// existing record with the same SKU.
func (s *Server) SeedIngredient(sku, name string, stock int, price float64, measurement string, warning int, expiry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingredients[sku] = record{
		ID:                 sku,
		SKU:                sku,
		Name:               name,
		Stock:              stock,
		Price:              price,
		ExpiryDate:         expiry,
		Orders:             1,
		MonthIncrease:      "0%",
		YearIncrease:       "0%",
		StockMeasurement:   measurement,
		WarningStockAmount: warning,
	}
}

// SeedMenuItem loads one item into the menu served by /get-all-menu-items.
func (s *Server) SeedMenuItem(id, name, category string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = append(s.menu, menuRecord{ID: id, Name: name, Category: category, Price: price})
}

// SetNow pins the clock used for the expiring-ingredients window.
func (s *Server) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SubmittedOrders returns the order batches received so far.
func (s *Server) SubmittedOrders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *Server) handleList(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) handleAdd(c *gin.Context) {
	var payload createPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ingredients[payload.SKU]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Ingredient already exists"})
		return
	}
	rec := record{
		ID:                 payload.SKU,
		SKU:                payload.SKU,
		Name:               payload.Name,
		Stock:              payload.Stock,
		Price:              payload.Price,
		ExpiryDate:         payload.ExpiryDate,
		Orders:             1,
		MonthIncrease:      "0%",
		YearIncrease:       "0%",
		StockMeasurement:   effectiveMeasurement(payload.Unit, payload.CustomUnit),
		WarningStockAmount: payload.Threshold,
	}
	s.ingredients[payload.SKU] = rec
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleUpdate(c *gin.Context) {
	var payload createPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, exists := s.ingredients[payload.SKU]
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Ingredient not found"})
		return
	}
	rec := record{
		ID:                 payload.SKU,
		SKU:                payload.SKU,
		Name:               payload.Name,
		Stock:              payload.Stock,
		Price:              payload.Price,
		ExpiryDate:         payload.ExpiryDate,
		Orders:             prev.Orders + 1,
		MonthIncrease:      prev.MonthIncrease,
		YearIncrease:       prev.YearIncrease,
		StockMeasurement:   effectiveMeasurement(payload.Unit, payload.CustomUnit),
		WarningStockAmount: payload.Threshold,
	}
	s.ingredients[payload.SKU] = rec
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleDelete(c *gin.Context) {
	sku := c.Query("sku")
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ingredients, sku)
	c.JSON(http.StatusOK, gin.H{"deleted": sku})
}

func (s *Server) handleResupply(c *gin.Context) {
	var rows []resupplyRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		if row.SKU == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Resupply row is missing a SKU"})
			return
		}
	}
	for _, row := range rows {
		existing, exists := s.ingredients[row.SKU]
		if exists && !row.IsNewIngredient {
			existing.Stock += row.Stock
			s.ingredients[row.SKU] = existing
			continue
		}
		s.ingredients[row.SKU] = record{
			ID:                 row.SKU,
			SKU:                row.SKU,
			Name:               row.Name,
			Stock:              row.Stock,
			Price:              row.Price,
			ExpiryDate:         row.ExpiryDate,
			Orders:             1,
			MonthIncrease:      "0%",
			YearIncrease:       "0%",
			StockMeasurement:   effectiveMeasurement(row.Unit, row.CustomUnit),
			WarningStockAmount: row.Threshold,
		}
	}
	c.JSON(http.StatusOK, gin.H{"resupplied": len(rows)})
}

func (s *Server) handleExpiring(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	deadline := now.Add(expiringWindow)
	out := make([]record, 0)
	for _, rec := range s.snapshot() {
		expiry, err := time.Parse("2006-01-02", rec.ExpiryDate)
		if err != nil {
			continue
		}
		if !expiry.Before(now) && !expiry.After(deadline) {
			out = append(out, rec)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleLowStock(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]record, 0)
	for _, rec := range s.snapshot() {
		if rec.Stock < rec.WarningStockAmount {
			out = append(out, rec)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleMenu(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]menuRecord, len(s.menu))
	copy(items, s.menu)
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleSubmitOrders(c *gin.Context) {
	var batch map[string]orderEntry
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, batch)
	c.JSON(http.StatusOK, gin.H{"submitted": len(batch)})
}

// snapshot returns the records in a stable order. Callers must hold mu.
func (s *Server) snapshot() []record {
	out := make([]record, 0, len(s.ingredients))
	for _, rec := range s.ingredients {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// effectiveMeasurement mirrors the store's rule: the custom label wins when
// present, otherwise the unit name is stored raw.
func effectiveMeasurement(unit, customUnit string) string {
	if customUnit != "" {
		return customUnit
	}
	return unit
}

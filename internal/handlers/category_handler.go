package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinashk/crickstand/internal/helpers"
	"github.com/avinashk/crickstand/internal/inventory"
	"github.com/avinashk/crickstand/internal/models"
)

type SeatCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	UnitPrice int    `json:"unit_price" binding:"required,min=1"`
	Capacity  int    `json:"capacity" binding:"required,min=1"`
}

// CreateSeatCategory registers a sellable pool for a match. The pool starts
// fully available; after that the counter only moves through the inventory
// store, never through an edit endpoint.
func CreateSeatCategory(c *gin.Context) {
	matchID := c.Param("id")

	var req SeatCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var match models.Match
	if err := gormDB.Where("id = ?", matchID).First(&match).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Match not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving match.")
		return
	}

	if match.Status == models.MatchCancelled || match.Status == models.MatchCompleted {
		helpers.RespondWithError(c, http.StatusConflict, "Match is no longer open for ticket sales.")
		return
	}

	category := models.SeatCategory{
		ID:        uuid.New(),
		MatchID:   match.ID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Capacity:  req.Capacity,
		Available: req.Capacity,
	}

	if err := gormDB.Create(&category).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create seat category.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Seat category created successfully.",
		"category_id": category.ID,
	})
}

func ListSeatCategories(c *gin.Context) {
	matchID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var categories []models.SeatCategory
	if err := gormDB.Where("match_id = ?", matchID).Order("unit_price asc").Find(&categories).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving seat categories.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetAvailability serves the availability snapshot through the inventory
// store so reads share its cache. The number is advisory only; a booking
// attempt can still be refused a moment later.
func GetAvailability(store inventory.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid category ID.")
			return
		}

		available, err := store.Availability(c.Request.Context(), categoryID)
		if err != nil {
			if err == inventory.ErrCategoryNotFound {
				helpers.RespondWithError(c, http.StatusNotFound, "Seat category not found.")
				return
			}
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving availability.")
			return
		}

		c.JSON(http.StatusOK, gin.H{"available": available})
	}
}

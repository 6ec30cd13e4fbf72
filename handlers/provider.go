package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	providerRepo "clinicdesk/database/repository/provider"
	"clinicdesk/models"
	"clinicdesk/services/scheduling"
	"clinicdesk/utils"
)

// ProviderHandler manages provider profiles and their working hours.
type ProviderHandler struct {
	Providers providerRepo.ProviderRepository
	Cache     *redis.Client
	Logger    *zap.Logger
}

// NewProviderHandler constructs a ProviderHandler.
func NewProviderHandler(providers providerRepo.ProviderRepository, cache *redis.Client, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{Providers: providers, Cache: cache, Logger: logger}
}

// CreateProviderRequest declares a new provider. Hours is keyed by weekday
// number ("0" = Sunday .. "6" = Saturday).
type CreateProviderRequest struct {
	Name      string                         `json:"name" binding:"required"`
	Specialty string                         `json:"specialty"`
	Hours     map[string]models.WorkingHours `json:"hours"`
}

// CreateProviderHandler registers a provider, active by default.
// POST /api/providers
func (h *ProviderHandler) CreateProviderHandler(c *gin.Context) {
	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if err := validateHours(req.Hours); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid working hours", err.Error())
		return
	}

	now := time.Now().UTC()
	provider := &models.Provider{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Specialty: req.Specialty,
		Active:    true,
		Hours:     req.Hours,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Providers.Create(c.Request.Context(), provider); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create provider", err.Error())
		return
	}
	c.JSON(http.StatusCreated, provider)
}

// GetProviderHandler returns one provider profile.
// GET /api/providers/:id
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	provider, err := h.Providers.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.JSONError(c, http.StatusNotFound, "Provider not found", c.Param("id"))
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, provider)
}

// ListProvidersHandler returns every active provider.
// GET /api/providers
func (h *ProviderHandler) ListProvidersHandler(c *gin.Context) {
	providers, err := h.Providers.ListActive(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list providers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// UpdateHoursHandler replaces a provider's weekly working-hours declaration.
// Existing grid days keep their materialized shape; only days materialized
// after the change pick up the new window.
// PUT /api/providers/:id/hours
func (h *ProviderHandler) UpdateHoursHandler(c *gin.Context) {
	providerID := c.Param("id")
	var hours map[string]models.WorkingHours
	if err := c.ShouldBindJSON(&hours); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if err := validateHours(hours); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid working hours", err.Error())
		return
	}

	if err := h.Providers.UpdateHours(c.Request.Context(), providerID, hours); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.JSONError(c, http.StatusNotFound, "Provider not found", providerID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update hours", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"providerId": providerID, "hours": hours})
}

// SetActiveHandler flips a provider's active flag. Deactivated providers stop
// resolving availability and accepting bookings but keep their history.
// PUT /api/providers/:id/active
func (h *ProviderHandler) SetActiveHandler(c *gin.Context) {
	providerID := c.Param("id")
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := h.Providers.SetActive(c.Request.Context(), providerID, body.Active); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.JSONError(c, http.StatusNotFound, "Provider not found", providerID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"providerId": providerID, "active": body.Active})
}

// validateHours rejects declarations the engine would silently degrade on.
// The engine tolerates bad data already in the store; new writes should not
// introduce it.
func validateHours(hours map[string]models.WorkingHours) error {
	for day, wh := range hours {
		if len(day) != 1 || day < "0" || day > "6" {
			return fmt.Errorf("invalid weekday key %q, want \"0\"..\"6\"", day)
		}
		if !wh.Working {
			continue
		}
		parts := strings.SplitN(wh.Window, "-", 2)
		if len(parts) != 2 {
			return fmt.Errorf("day %s: window %q is not \"HH:MM-HH:MM\"", day, wh.Window)
		}
		start, err := scheduling.ParseClock(strings.TrimSpace(parts[0]))
		if err != nil {
			return fmt.Errorf("day %s: %w", day, err)
		}
		end, err := scheduling.ParseClock(strings.TrimSpace(parts[1]))
		if err != nil {
			return fmt.Errorf("day %s: %w", day, err)
		}
		if end <= start {
			return fmt.Errorf("day %s: window %q ends before it starts", day, wh.Window)
		}
		if wh.SlotDurationMin <= 0 {
			return fmt.Errorf("day %s: slotDurationMin must be positive", day)
		}
	}
	return nil
}

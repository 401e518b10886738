package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bkalafat/barberly/internal/httperr"
	"github.com/bkalafat/barberly/internal/httpresp"
	"github.com/bkalafat/barberly/internal/models"
)

// DirectoryHandler serves the read side of the shop/barber/service
// directory. Thin by design: plain lookups, no business rules.
type DirectoryHandler struct {
	db *gorm.DB
}

func NewDirectoryHandler(db *gorm.DB) *DirectoryHandler {
	return &DirectoryHandler{db: db}
}

func (h *DirectoryHandler) ListShops(c *gin.Context) {
	var shops []models.BarberShop
	if err := h.db.WithContext(c.Request.Context()).
		Where("is_active = true").
		Order("name ASC").
		Find(&shops).Error; err != nil {
		httperr.Internal(c, "shops_list_failed", "Could not list shops.")
		return
	}
	httpresp.List(c, shops)
}

func (h *DirectoryHandler) GetShop(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var shop models.BarberShop
	if err := h.db.WithContext(c.Request.Context()).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "shop_not_found", "Shop not found.")
			return
		}
		httperr.Internal(c, "shop_lookup_failed", "Could not load shop.")
		return
	}
	httpresp.OK(c, shop)
}

func (h *DirectoryHandler) ListShopBarbers(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var barbers []models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Where("barber_shop_id = ? AND is_active = true", id).
		Order("full_name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "barbers_list_failed", "Could not list barbers.")
		return
	}
	httpresp.List(c, barbers)
}

func (h *DirectoryHandler) ListShopServices(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("barber_shop_id = ? AND is_active = true", id).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "services_list_failed", "Could not list services.")
		return
	}
	httpresp.List(c, services)
}

func (h *DirectoryHandler) GetBarber(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).First(&barber, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barber not found.")
			return
		}
		httperr.Internal(c, "barber_lookup_failed", "Could not load barber.")
		return
	}
	httpresp.OK(c, barber)
}

func (h *DirectoryHandler) GetService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "service_lookup_failed", "Could not load service.")
		return
	}
	httpresp.OK(c, svc)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Id must be a UUID.")
		return uuid.Nil, false
	}
	return id, true
}

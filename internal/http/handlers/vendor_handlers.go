package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/http/middleware"
)

// VendorHandlers handles vendor HTTP requests
type VendorHandlers struct {
	vendorSvc domain.VendorService
}

// NewVendorHandlers creates new vendor handlers
func NewVendorHandlers(vendorSvc domain.VendorService) *VendorHandlers {
	return &VendorHandlers{vendorSvc: vendorSvc}
}

// List lists vendors; anonymous callers only see bookable ones
func (h *VendorHandlers) List(c *gin.Context) {
	var q ListVendorsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.BindError(c, err)
		return
	}

	filter := domain.VendorFilter{Status: q.Status, City: q.City, Limit: q.Limit, Offset: q.Offset}
	vendors, total, err := h.vendorSvc.List(c.Request.Context(), middleware.OptionalActor(c), filter)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respondPage(c, newVendorViews(vendors), total, q.PageQuery)
}

// Get returns one vendor
func (h *VendorHandlers) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorSvc.Get(c.Request.Context(), middleware.OptionalActor(c), id)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, newVendorView(vendor))
}

// Create registers the caller's vendor profile
func (h *VendorHandlers) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	vendor, err := h.vendorSvc.Create(c.Request.Context(), a, optionalUUID(req.UserID), req.toDomain())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusCreated, newVendorView(vendor))
}

// Update patches a vendor profile
func (h *VendorHandlers) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	vendor, err := h.vendorSvc.Update(c.Request.Context(), a, id, req.toPatch())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, newVendorView(vendor))
}

// Delete removes a vendor
func (h *VendorHandlers) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.vendorSvc.Delete(c.Request.Context(), a, id); err != nil {
		middleware.Fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Approve marks a vendor approved
func (h *VendorHandlers) Approve(c *gin.Context) { h.setStatus(c, domain.VendorApproved) }

// Reject marks a vendor rejected
func (h *VendorHandlers) Reject(c *gin.Context) { h.setStatus(c, domain.VendorRejected) }

// Activate re-enables a vendor
func (h *VendorHandlers) Activate(c *gin.Context) { h.setActive(c, true) }

// Deactivate disables a vendor without deleting it
func (h *VendorHandlers) Deactivate(c *gin.Context) { h.setActive(c, false) }

func (h *VendorHandlers) setStatus(c *gin.Context, status string) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorSvc.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, newVendorView(vendor))
}

func (h *VendorHandlers) setActive(c *gin.Context, active bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorSvc.SetActive(c.Request.Context(), id, active)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, newVendorView(vendor))
}

// Stats returns the admin dashboard counters
func (h *VendorHandlers) Stats(c *gin.Context) {
	stats, err := h.vendorSvc.Stats(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, stats)
}

// UploadLogo stores the multipart "logo" file as the vendor's logo
func (h *VendorHandlers) UploadLogo(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	header, err := c.FormFile("logo")
	if err != nil {
		middleware.Fail(c, domain.BadRequest("logo file is required").WithCause(err))
		return
	}
	file, err := header.Open()
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	defer file.Close()

	image := domain.Image{Body: file, Size: header.Size, ContentType: header.Header.Get("Content-Type")}
	vendor, err := h.vendorSvc.UploadLogo(c.Request.Context(), a, id, image)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, newVendorView(vendor))
}

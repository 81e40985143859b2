package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/http/middleware"
)

// CatalogHandlers handles category, service and package HTTP requests
type CatalogHandlers struct {
	catalogSvc domain.CatalogService
}

// NewCatalogHandlers creates new catalog handlers
func NewCatalogHandlers(catalogSvc domain.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalogSvc: catalogSvc}
}

// ListCategories lists every category
func (h *CatalogHandlers) ListCategories(c *gin.Context) {
	categories, err := h.catalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	views := make([]categoryView, 0, len(categories))
	for i := range categories {
		views = append(views, newCategoryView(&categories[i]))
	}
	respond(c, http.StatusOK, views)
}

// CreateCategory adds a category
func (h *CatalogHandlers) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	category, err := h.catalogSvc.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusCreated, newCategoryView(category))
}

// ListServices lists services, optionally for one vendor or category
func (h *CatalogHandlers) ListServices(c *gin.Context) {
	var q ListServicesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.BindError(c, err)
		return
	}

	filter := domain.ServiceFilter{
		VendorID:   optionalUUID(q.VendorID),
		CategoryID: optionalUUID(q.CategoryID),
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	services, total, err := h.catalogSvc.ListServices(c.Request.Context(), middleware.OptionalActor(c), filter)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	views := make([]serviceView, 0, len(services))
	for i := range services {
		views = append(views, newServiceView(&services[i]))
	}
	respondPage(c, views, total, q.PageQuery)
}

// GetService returns one service
func (h *CatalogHandlers) GetService(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	service, err := h.catalogSvc.GetService(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, newServiceView(service))
}

// CreateService adds a service to a vendor
func (h *CatalogHandlers) CreateService(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	service, err := h.catalogSvc.CreateService(c.Request.Context(), a, req.toDomain())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusCreated, newServiceView(service))
}

// UpdateService patches a service
func (h *CatalogHandlers) UpdateService(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	service, err := h.catalogSvc.UpdateService(c.Request.Context(), a, id, req.toPatch())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, newServiceView(service))
}

// DeleteService removes a service
func (h *CatalogHandlers) DeleteService(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogSvc.DeleteService(c.Request.Context(), a, id); err != nil {
		middleware.Fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListPackages lists a service's packages
func (h *CatalogHandlers) ListPackages(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	packages, err := h.catalogSvc.ListPackages(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	views := make([]packageView, 0, len(packages))
	for i := range packages {
		views = append(views, newPackageView(&packages[i]))
	}
	respond(c, http.StatusOK, views)
}

// AddPackage adds a package to a service
func (h *CatalogHandlers) AddPackage(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	pkg := &domain.ServicePackage{Name: req.Name, Description: req.Description, Price: req.Price}
	created, err := h.catalogSvc.AddPackage(c.Request.Context(), a, id, pkg)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusCreated, newPackageView(created))
}

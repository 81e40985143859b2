package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/mocks"
)

func catalogEngine(svc *mocks.MockCatalogService, caller *domain.Actor) *gin.Engine {
	h := NewCatalogHandlers(svc)
	r := newTestEngine()
	if caller != nil {
		r.Use(as(*caller))
	}
	r.GET("/categories", h.ListCategories)
	r.POST("/categories", h.CreateCategory)
	r.GET("/services", h.ListServices)
	r.POST("/services", h.CreateService)
	r.GET("/services/:id", h.GetService)
	r.PATCH("/services/:id", h.UpdateService)
	r.DELETE("/services/:id", h.DeleteService)
	r.GET("/services/:id/packages", h.ListPackages)
	r.POST("/services/:id/packages", h.AddPackage)
	return r
}

func TestCatalogHandlers_Categories(t *testing.T) {
	svc := mocks.NewMockCatalogService()
	svc.ListCategoriesFunc = func(ctx context.Context) ([]domain.Category, error) {
		return []domain.Category{{ID: uuid.New(), Name: "Photography"}, {ID: uuid.New(), Name: "Catering"}}, nil
	}
	svc.CreateCategoryFunc = func(ctx context.Context, name, description string) (*domain.Category, error) {
		if name == "Photography" {
			return nil, domain.ErrCategoryExists
		}
		return &domain.Category{ID: uuid.New(), Name: name}, nil
	}
	caller := admin()
	engine := catalogEngine(svc, &caller)

	w := perform(engine, http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 2)

	assert.Equal(t, http.StatusCreated, perform(engine, http.MethodPost, "/categories", CreateCategoryRequest{Name: "Decor"}).Code)
	assert.Equal(t, http.StatusConflict, perform(engine, http.MethodPost, "/categories", CreateCategoryRequest{Name: "Photography"}).Code)
	assert.Equal(t, http.StatusBadRequest, perform(engine, http.MethodPost, "/categories", CreateCategoryRequest{Name: "D"}).Code)
}

func TestCatalogHandlers_CreateServiceValidation(t *testing.T) {
	vendorID, categoryID := uuid.NewString(), uuid.NewString()

	tests := []struct {
		name            string
		body            string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "valid",
			body:           `{"vendor_id":"` + vendorID + `","category_id":"` + categoryID + `","name":"Wedding shoot","price":25000,"duration_minutes":480}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:            "malformed vendor id",
			body:            `{"vendor_id":"v-1","category_id":"` + categoryID + `","name":"Wedding shoot","price":1}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "vendor_id must be a UUID",
		},
		{
			name:            "negative price",
			body:            `{"vendor_id":"` + vendorID + `","category_id":"` + categoryID + `","name":"Wedding shoot","price":-5}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "price must be at least 0",
		},
		{
			name:            "duration beyond a day",
			body:            `{"vendor_id":"` + vendorID + `","category_id":"` + categoryID + `","name":"Wedding shoot","price":1,"duration_minutes":1441}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "duration_minutes must be at most 1440",
		},
		{
			name:            "price of the wrong type",
			body:            `{"vendor_id":"` + vendorID + `","category_id":"` + categoryID + `","name":"Wedding shoot","price":"free"}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockCatalogService()
			var got *domain.Service
			svc.CreateServiceFunc = func(ctx context.Context, a domain.Actor, s *domain.Service) (*domain.Service, error) {
				got = s
				s.ID = uuid.New()
				return s, nil
			}
			caller := domain.Actor{UserID: uuid.New(), Role: domain.RoleVendor}

			w := perform(catalogEngine(svc, &caller), http.MethodPost, "/services", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusCreated {
				assert.Equal(t, tt.expectedMessage, errorMessage(t, w))
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, vendorID, got.VendorID.String())
			assert.Equal(t, 480, got.DurationMinutes)
		})
	}
}

func TestCatalogHandlers_ListServices(t *testing.T) {
	svc := mocks.NewMockCatalogService()
	var got domain.ServiceFilter
	svc.ListServicesFunc = func(ctx context.Context, a *domain.Actor, filter domain.ServiceFilter) ([]domain.Service, int64, error) {
		got = filter
		return []domain.Service{{ID: uuid.New(), Name: "Wedding shoot", IsActive: true}}, 1, nil
	}
	engine := catalogEngine(svc, nil)
	vendorID := uuid.New()

	w := perform(engine, http.MethodGet, "/services?vendor_id="+vendorID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, got.VendorID) {
		assert.Equal(t, vendorID, *got.VendorID)
	}
	assert.Nil(t, got.CategoryID)

	assert.Equal(t, http.StatusBadRequest, perform(engine, http.MethodGet, "/services?category_id=photo", nil).Code)
}

func TestCatalogHandlers_ServiceLifecycle(t *testing.T) {
	svc := mocks.NewMockCatalogService()
	id := uuid.New()
	svc.GetServiceFunc = func(ctx context.Context, sid uuid.UUID) (*domain.Service, error) {
		return &domain.Service{ID: sid, Name: "Wedding shoot", Price: 25000}, nil
	}
	var patch domain.ServicePatch
	svc.UpdateServiceFunc = func(ctx context.Context, a domain.Actor, sid uuid.UUID, p domain.ServicePatch) (*domain.Service, error) {
		patch = p
		return &domain.Service{ID: sid, Price: *p.Price, IsActive: *p.IsActive}, nil
	}
	svc.DeleteServiceFunc = func(ctx context.Context, a domain.Actor, sid uuid.UUID) error {
		return domain.ErrForbidden
	}
	caller := domain.Actor{UserID: uuid.New(), Role: domain.RoleVendor}
	engine := catalogEngine(svc, &caller)

	w := perform(engine, http.MethodGet, "/services/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(25000), data(t, w)["price"])

	w = perform(engine, http.MethodPatch, "/services/"+id.String(), `{"price":30000,"is_active":false}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, patch.CategoryID)
	assert.Equal(t, false, data(t, w)["is_active"])

	w = perform(engine, http.MethodPatch, "/services/"+id.String(), `{"category_id":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusForbidden, perform(engine, http.MethodDelete, "/services/"+id.String(), nil).Code)
}

func TestCatalogHandlers_Packages(t *testing.T) {
	svc := mocks.NewMockCatalogService()
	svc.ListPackagesFunc = func(ctx context.Context, serviceID uuid.UUID) ([]domain.ServicePackage, error) {
		return []domain.ServicePackage{{ID: uuid.New(), ServiceID: serviceID, Name: "Gold", Price: 40000}}, nil
	}
	caller := domain.Actor{UserID: uuid.New(), Role: domain.RoleVendor}
	engine := catalogEngine(svc, &caller)
	serviceID := uuid.NewString()

	w := perform(engine, http.MethodGet, "/services/"+serviceID+"/packages", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)

	w = perform(engine, http.MethodPost, "/services/"+serviceID+"/packages", CreatePackageRequest{Name: "Silver", Price: 20000})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, serviceID, data(t, w)["service_id"])

	w = perform(engine, http.MethodPost, "/services/"+serviceID+"/packages", `{"name":"Silver","price":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/http/middleware"
)

// PolicyHandlers administers the RBAC policies
type PolicyHandlers struct {
	policies domain.PolicyService
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policies domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policies: policies}
}

// PolicyRequest names one role/resource/action rule
type PolicyRequest struct {
	Role     string `json:"role" binding:"required,max=50"`
	Resource string `json:"resource" binding:"required,startswith=/,max=255"`
	Action   string `json:"action" binding:"required,max=50"`
}

type policyView struct {
	Subject  string `json:"subject"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// List returns every policy rule
func (h *PolicyHandlers) List(c *gin.Context) {
	rules := h.policies.GetPolicies()
	views := make([]policyView, 0, len(rules))
	for _, r := range rules {
		if len(r) < 3 {
			continue
		}
		views = append(views, policyView{Subject: r[0], Resource: r[1], Action: r[2]})
	}
	respond(c, http.StatusOK, views)
}

// Add adds a policy rule
func (h *PolicyHandlers) Add(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}
	if err := h.policies.AddPolicy(req.Role, req.Resource, req.Action); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Remove deletes a policy rule
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}
	if err := h.policies.RemovePolicy(req.Role, req.Resource, req.Action); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jahir-soochna/internal/domain"
	"jahir-soochna/internal/service"
	resp "jahir-soochna/internal/transport/http/response"
)

type ObjectionHandler struct {
	svc *service.ObjectionService
	log *zap.Logger
}

func NewObjectionHandler(svc *service.ObjectionService, log *zap.Logger) *ObjectionHandler {
	return &ObjectionHandler{svc: svc, log: log}
}

// File 任何访客可提异议，无需登录
func (h *ObjectionHandler) File(c *gin.Context) {
	var in struct {
		ObjectorName  string `json:"objectorName" binding:"required,max=100"`
		Reason        string `json:"reason" binding:"required"`
		ObjectorEmail string `json:"objectorEmail" binding:"omitempty,email"`
		ObjectorPhone string `json:"objectorPhone" binding:"omitempty,max=32"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "Invalid data", err.Error())
		return
	}

	o, err := h.svc.File(c.Request.Context(), c.Param("id"), service.FileObjectionInput{
		ObjectorName:  in.ObjectorName,
		ObjectorEmail: in.ObjectorEmail,
		ObjectorPhone: in.ObjectorPhone,
		Reason:        in.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			resp.Fail(c, http.StatusNotFound, "Notice not found")
		case domain.IsValidation(err):
			resp.Fail(c, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("file objection failed", zap.Error(err))
			resp.Fail(c, http.StatusInternalServerError, "Failed to file objection")
		}
		return
	}
	c.JSON(http.StatusCreated, o)
}

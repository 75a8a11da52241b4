package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jahir-soochna/internal/domain"
	"jahir-soochna/internal/filestore"
	"jahir-soochna/internal/service"
	resp "jahir-soochna/internal/transport/http/response"
)

type NoticeHandler struct {
	svc   *service.NoticeService
	files *filestore.Store
	log   *zap.Logger
}

func NewNoticeHandler(svc *service.NoticeService, files *filestore.Store, log *zap.Logger) *NoticeHandler {
	return &NoticeHandler{svc: svc, files: files, log: log}
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

func (h *NoticeHandler) List(c *gin.Context) {
	p := domain.NoticeListParams{
		Page:       atoiDefault(c.Query("page"), 1),
		Limit:      atoiDefault(c.Query("limit"), 10),
		Category:   c.Query("category"),
		Search:     c.Query("search"),
		DateFilter: c.Query("dateFilter"),
		SortBy:     c.Query("sortBy"),
	}
	page, err := h.svc.List(c.Request.Context(), p)
	if err != nil {
		h.log.Error("list notices failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Failed to fetch notices")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *NoticeHandler) Categories(c *gin.Context) {
	counts, err := h.svc.CategoryCounts(c.Request.Context())
	if err != nil {
		h.log.Error("category counts failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Failed to fetch category counts")
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *NoticeHandler) Create(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		resp.Fail(c, http.StatusBadRequest, "File is required")
		return
	}
	stored, err := h.files.SaveUpload(fh)
	if err != nil {
		if errors.Is(err, filestore.ErrFileType) {
			resp.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("store upload failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Failed to store file")
		return
	}

	n, err := h.svc.Create(c.Request.Context(), service.CreateNoticeInput{
		Title:      c.PostForm("title"),
		Content:    c.PostForm("content"),
		LawyerName: c.PostForm("lawyerName"),
		Location:   c.PostForm("location"),
		Category:   c.PostForm("category"),
		OwnerID:    c.GetString("userId"),
		File:       stored,
	})
	if err != nil {
		// 记录没建成，别留孤儿文件
		_ = h.files.Remove(stored.Path)
		if domain.IsValidation(err) {
			resp.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("create notice failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Failed to create notice")
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *NoticeHandler) CreateGenerated(c *gin.Context) {
	var in struct {
		ImageData  string `json:"imageData"`
		Title      string `json:"title"`
		Content    string `json:"content"`
		LawyerName string `json:"lawyerName"`
		Location   string `json:"location"`
		Category   string `json:"category"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "Invalid data", err.Error())
		return
	}

	n, err := h.svc.CreateGenerated(c.Request.Context(), service.GeneratedNoticeInput{
		ImageData:  in.ImageData,
		Title:      in.Title,
		Content:    in.Content,
		LawyerName: in.LawyerName,
		Location:   in.Location,
		Category:   in.Category,
		OwnerID:    c.GetString("userId"),
	})
	if err != nil {
		if domain.IsValidation(err) {
			resp.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("create generated notice failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Failed to save generated notice")
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *NoticeHandler) Update(c *gin.Context) {
	var stored *filestore.StoredFile
	if fh, err := c.FormFile("file"); err == nil {
		stored, err = h.files.SaveUpload(fh)
		if err != nil {
			if errors.Is(err, filestore.ErrFileType) {
				resp.Fail(c, http.StatusBadRequest, err.Error())
				return
			}
			h.log.Error("store upload failed", zap.Error(err))
			resp.Fail(c, http.StatusInternalServerError, "Failed to store file")
			return
		}
	}

	n, err := h.svc.Update(c.Request.Context(), c.Param("id"), c.GetString("userId"), service.UpdateNoticeInput{
		Title:      c.PostForm("title"),
		Content:    c.PostForm("content"),
		LawyerName: c.PostForm("lawyerName"),
		Location:   c.PostForm("location"),
		Category:   c.PostForm("category"),
		File:       stored,
	})
	if err != nil {
		if stored != nil {
			_ = h.files.Remove(stored.Path)
		}
		switch {
		case errors.Is(err, domain.ErrNotFound):
			resp.Fail(c, http.StatusNotFound, "Notice not found")
		case errors.Is(err, domain.ErrForbidden):
			resp.Fail(c, http.StatusForbidden, "Access denied: Insufficient role")
		case domain.IsValidation(err):
			resp.Fail(c, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("update notice failed", zap.Error(err))
			resp.Fail(c, http.StatusInternalServerError, "Failed to update notice")
		}
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NoticeHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"), c.GetString("userId"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.Fail(c, http.StatusNotFound, "Notice not found")
		return
	case errors.Is(err, domain.ErrForbidden):
		resp.Fail(c, http.StatusForbidden, "Access denied: Insufficient role")
		return
	case err != nil:
		h.log.Error("delete notice failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Failed to delete notice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notice deleted"})
}

func (h *NoticeHandler) Download(c *gin.Context) {
	n, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			resp.Fail(c, http.StatusNotFound, "Notice not found")
			return
		}
		h.log.Error("download lookup failed", zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "Failed to download file")
		return
	}
	if !h.files.Exists(n.FilePath) {
		resp.Fail(c, http.StatusNotFound, "File not found")
		return
	}
	abs, err := h.files.Abs(n.FilePath)
	if err != nil {
		resp.Fail(c, http.StatusInternalServerError, "Failed to download file")
		return
	}
	c.FileAttachment(abs, n.FileName)
}

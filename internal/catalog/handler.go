package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"flixhub/pkg/models"
)

// CategoryHandler exposes CRUD for one category table; it is registered
// three times, once per table, under its own route group.
type CategoryHandler struct {
	Repo *CategoryRepo
}

func NewCategoryHandler(repo *CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Repo: repo}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.remove)
}

type nameReq struct {
	Name string `json:"name"`
}

func (h *CategoryHandler) list(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CategoryHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CategoryHandler) create(c *gin.Context) {
	var req nameReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	item, err := h.Repo.Create(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CategoryHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req nameReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	item, err := h.Repo.Update(c.Request.Context(), id, strings.TrimSpace(req.Name))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CategoryHandler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.Repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

type ContentHandler struct {
	Repo *ContentRepo
}

func NewContentHandler(repo *ContentRepo) *ContentHandler {
	return &ContentHandler{Repo: repo}
}

func (h *ContentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:show_id", h.get)
	rg.POST("", h.create)
	rg.PUT("/:show_id", h.update)
	rg.DELETE("/:show_id", h.remove)
}

func (h *ContentHandler) list(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) get(c *gin.Context) {
	item, err := h.Repo.Get(c.Request.Context(), c.Param("show_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) create(c *gin.Context) {
	var req models.Content
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	req.ShowID = strings.TrimSpace(req.ShowID)
	req.Title = strings.TrimSpace(req.Title)
	if req.ShowID == "" || req.Title == "" || req.TypeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "show_id, title and type_id required"})
		return
	}
	if err := h.Repo.Create(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, req)
}

// contentPatch mirrors models.Content with every field optional, so a
// PUT only touches the fields the client actually sent.
type contentPatch struct {
	Title           *string `json:"title"`
	TypeID          *int64  `json:"type_id"`
	Director        *string `json:"director"`
	Cast            *string `json:"cast"`
	CountryID       *int64  `json:"country_id"`
	DateAdded       *string `json:"date_added"`
	ReleaseYear     *int    `json:"release_year"`
	RatingID        *int64  `json:"rating_id"`
	DurationMinutes *int    `json:"duration_minutes"`
	DurationSeasons *int    `json:"duration_seasons"`
}

func (h *ContentHandler) update(c *gin.Context) {
	showID := c.Param("show_id")

	current, err := h.Repo.Get(c.Request.Context(), showID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var patch contentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if patch.Title != nil {
		current.Title = *patch.Title
	}
	if patch.TypeID != nil {
		current.TypeID = *patch.TypeID
	}
	if patch.Director != nil {
		current.Director = patch.Director
	}
	if patch.Cast != nil {
		current.Cast = patch.Cast
	}
	if patch.CountryID != nil {
		current.CountryID = patch.CountryID
	}
	if patch.DateAdded != nil {
		current.DateAdded = patch.DateAdded
	}
	if patch.ReleaseYear != nil {
		current.ReleaseYear = patch.ReleaseYear
	}
	if patch.RatingID != nil {
		current.RatingID = patch.RatingID
	}
	if patch.DurationMinutes != nil {
		current.DurationMinutes = patch.DurationMinutes
	}
	if patch.DurationSeasons != nil {
		current.DurationSeasons = patch.DurationSeasons
	}

	if _, err := h.Repo.Update(c.Request.Context(), *current); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, current)
}

func (h *ContentHandler) remove(c *gin.Context) {
	deleted, err := h.Repo.Delete(c.Request.Context(), c.Param("show_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

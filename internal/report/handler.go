package report

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes mounts the fixed analytical reports under /reports and
// the aggregate statistics under /stats.
func (h *Handler) RegisterRoutes(reports, stats *gin.RouterGroup) {
	reports.GET("/latest-year-shows", h.latestYearShows)
	reports.GET("/leading-countries", h.leadingCountries)
	reports.GET("/longest-movies", h.longestMovies)
	reports.GET("/additions-by-year", h.additionsByYear)
	reports.GET("/movie-duration-by-year", h.movieDurationByYear)

	stats.GET("/content-by-country", h.contentByCountry)
	stats.GET("/min-max-avg-duration", h.movieDurationByYear)
	stats.GET("/content-by-type-and-rating", h.contentByTypeAndRating)
	stats.GET("/avg-duration", h.avgDuration)
	stats.GET("/min-duration", h.minDuration)
	stats.GET("/max-duration", h.maxDuration)
	stats.GET("/rating-content-stats", h.ratingStats)
	stats.GET("/country-content-stats", h.countryStats)
	stats.GET("/release-year-content-stats", h.releaseYearStats)
}

func (h *Handler) latestYearShows(c *gin.Context) {
	out, err := h.Repo.LatestYearShows(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) leadingCountries(c *gin.Context) {
	out, err := h.Repo.LeadingCountries(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) longestMovies(c *gin.Context) {
	out, err := h.Repo.LongestMovies(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) additionsByYear(c *gin.Context) {
	out, err := h.Repo.AdditionsByYear(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) movieDurationByYear(c *gin.Context) {
	out, err := h.Repo.MovieDurationByYear(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) contentByCountry(c *gin.Context) {
	out, err := h.Repo.ContentByCountry(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) contentByTypeAndRating(c *gin.Context) {
	out, err := h.Repo.ContentByTypeAndRating(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) avgDuration(c *gin.Context) {
	s, err := h.Repo.MovieDurations(c.Request.Context())
	if err != nil {
		respond(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avg_duration": s.AvgMinutes})
}

func (h *Handler) minDuration(c *gin.Context) {
	s, err := h.Repo.MovieDurations(c.Request.Context())
	if err != nil {
		respond(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"min_duration": s.MinMinutes})
}

func (h *Handler) maxDuration(c *gin.Context) {
	s, err := h.Repo.MovieDurations(c.Request.Context())
	if err != nil {
		respond(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"max_duration": s.MaxMinutes})
}

func (h *Handler) ratingStats(c *gin.Context) {
	out, err := h.Repo.RatingStats(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) countryStats(c *gin.Context) {
	out, err := h.Repo.CountryStats(c.Request.Context())
	respond(c, out, err)
}

func (h *Handler) releaseYearStats(c *gin.Context) {
	out, err := h.Repo.ReleaseYearStats(c.Request.Context())
	respond(c, out, err)
}

func respond(c *gin.Context, payload any, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report failed"})
		return
	}
	c.JSON(http.StatusOK, payload)
}

package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"propinsight/server/internal/insights"
	"propinsight/server/internal/models"
	"propinsight/server/internal/session"
)

const (
	SessionCookie = "propinsight_session"
	SessionHeader = "X-Session-ID"

	sessionKey = "session"
)

type Handler struct {
	sessions *session.Store
	insights *insights.Service
	logger   *logrus.Logger
}

type ChatRequest struct {
	Message string `json:"message"`
}

type PropertyCard struct {
	models.Property
	StatusLabel string `json:"statusLabel"`
}

func NewHandler(sessions *session.Store, service *insights.Service, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		sessions: sessions,
		insights: service,
		logger:   logger,
	}
}

// SessionMiddleware resolves the caller's session from the header or cookie,
// starting a new one when neither names a live session.
func (h *Handler) SessionMiddleware(c *gin.Context) {
	id := c.GetHeader(SessionHeader)
	if id == "" {
		id, _ = c.Cookie(SessionCookie)
	}

	s, created, err := h.sessions.GetOrCreate(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create session")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, s.ID, 0, "/", "", false, true)
	}
	c.Header(SessionHeader, s.ID)
	c.Set(sessionKey, s)
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// analysisContext detaches the completion call from the request: once issued,
// a call runs to success or failure even if the client goes away.
func analysisContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.sessions.Len(),
	})
}

func (h *Handler) GetDashboard(c *gin.Context) {
	s := currentSession(c)

	stats, err := s.Catalog.GetDashboardStats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get dashboard stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get dashboard stats"})
		return
	}

	properties, err := s.Catalog.GetAllProperties("")
	if err != nil {
		h.logger.WithError(err).Error("Failed to get properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get properties"})
		return
	}

	points, err := s.Catalog.GetMarketData()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get market data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get market data"})
		return
	}

	ctx := analysisContext(c)

	// Recommendations are for the first property only, top three
	recommendations := []string{}
	if len(properties) > 0 {
		recommendations = h.insights.Recommend(ctx, properties[0])
		if len(recommendations) > 3 {
			recommendations = recommendations[:3]
		}
	}

	trend := h.insights.AnalyzeTrend(ctx, points)
	keyInsight := ""
	if insightList := trend.Strings("insights"); len(insightList) > 0 {
		keyInsight = insightList[0]
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":           stats,
		"properties":      toCards(properties),
		"recommendations": recommendations,
		"market_trend": gin.H{
			"trend":       trend.String("trend", "Unknown"),
			"key_insight": keyInsight,
		},
	})
}

func (h *Handler) GetProperties(c *gin.Context) {
	status := models.OccupancyStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status, expected occupied, vacant or pending_renewal"})
		return
	}

	properties, err := currentSession(c).Catalog.GetAllProperties(status)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get properties"})
		return
	}

	c.JSON(http.StatusOK, toCards(properties))
}

func (h *Handler) GetProperty(c *gin.Context) {
	property, ok := h.lookupProperty(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toCard(*property))
}

func (h *Handler) GetPropertyRecommendations(c *gin.Context) {
	property, ok := h.lookupProperty(c)
	if !ok {
		return
	}

	recommendations := h.insights.Recommend(analysisContext(c), *property)
	c.JSON(http.StatusOK, gin.H{
		"property_id":     property.ID,
		"recommendations": recommendations,
	})
}

// lookupProperty writes the error response itself and reports whether to continue
func (h *Handler) lookupProperty(c *gin.Context) (*models.Property, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return nil, false
	}

	property, err := currentSession(c).Catalog.GetProperty(id)
	if err != nil {
		h.logger.WithError(err).WithField("property_id", id).Error("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return nil, false
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return nil, false
	}
	return property, true
}

func (h *Handler) GetFinancials(c *gin.Context) {
	var filter models.FinancialFilter

	if raw := c.Query("property_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property_id"})
			return
		}
		filter.PropertyID = id
	}

	if raw := strings.ToLower(c.Query("type")); raw != "" && raw != "all" {
		filter.Type = models.RecordType(raw)
		if !filter.Type.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type, expected income or expense"})
			return
		}
	}

	catalog := currentSession(c).Catalog
	summary, err := catalog.GetFinancialSummary()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get financial summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get financial summary"})
		return
	}

	records, err := catalog.GetFinancialRecords(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get financial records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get financial records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"records": records,
	})
}

func (h *Handler) GetMarketData(c *gin.Context) {
	points, err := currentSession(c).Catalog.GetMarketData()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get market data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get market data"})
		return
	}

	c.JSON(http.StatusOK, points)
}

func (h *Handler) GetMarketAnalysis(c *gin.Context) {
	points, err := currentSession(c).Catalog.GetMarketData()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get market data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get market data"})
		return
	}

	c.JSON(http.StatusOK, h.insights.AnalyzeTrend(analysisContext(c), points))
}

func (h *Handler) GetCompetitors(c *gin.Context) {
	competitors, err := currentSession(c).Catalog.GetCompetitors()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get competitors")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get competitors"})
		return
	}

	c.JSON(http.StatusOK, competitors)
}

func (h *Handler) GetCompetitorAnalysis(c *gin.Context) {
	catalog := currentSession(c).Catalog

	competitors, err := catalog.GetCompetitors()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get competitors")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get competitors"})
		return
	}

	properties, err := catalog.GetAllProperties("")
	if err != nil {
		h.logger.WithError(err).Error("Failed to get properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get properties"})
		return
	}

	c.JSON(http.StatusOK, h.insights.AnalyzeCompetitors(analysisContext(c), competitors, properties))
}

// GetChat opens the chat view, greeting the operator on an empty history
func (h *Handler) GetChat(c *gin.Context) {
	s := currentSession(c)
	s.SeedGreeting()

	c.JSON(http.StatusOK, gin.H{
		"messages": s.History(),
		"state":    s.State().String(),
	})
}

func (h *Handler) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse chat request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	s := currentSession(c)
	exchange, err := s.Submit(analysisContext(c), h.insights, req.Message)
	if errors.Is(err, session.ErrBusy) {
		c.JSON(http.StatusConflict, gin.H{"error": "Please wait for the current reply"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to submit chat message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit chat message"})
		return
	}
	if exchange == nil {
		exchange = []models.ChatMessage{}
	}

	c.JSON(http.StatusOK, gin.H{
		"appended": exchange,
		"messages": s.History(),
	})
}

func toCard(p models.Property) PropertyCard {
	return PropertyCard{Property: p, StatusLabel: p.Status.Label()}
}

func toCards(properties []models.Property) []PropertyCard {
	cards := make([]PropertyCard, len(properties))
	for i, p := range properties {
		cards[i] = toCard(p)
	}
	return cards
}

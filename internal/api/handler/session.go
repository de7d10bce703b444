package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moisesmmele/market-analysis/internal/api/middleware"
	"github.com/moisesmmele/market-analysis/internal/domain"
	"github.com/moisesmmele/market-analysis/internal/mappings"
	"github.com/moisesmmele/market-analysis/internal/pipeline"
	"github.com/moisesmmele/market-analysis/internal/repository"
	"github.com/moisesmmele/market-analysis/internal/topics"
)

// SessionHandler serves scrape sessions and triggers pipeline runs.
type SessionHandler struct {
	sessions *repository.SessionRepository
	mappings *mappings.Cache
	topics   []domain.Topic
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(sessions *repository.SessionRepository, cache *mappings.Cache, allTopics []domain.Topic) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		mappings: cache,
		topics:   allTopics,
	}
}

// ListSessions returns sessions without their raw listings, newest first.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	sessions, err := h.sessions.List(c.Request.Context(), limit, offset)
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("Failed to list sessions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

// GetSession returns one session with its raw listings.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// ProcessSession runs the classification pipeline over one session and
// returns the report. The optional "topics" query parameter selects topics
// by title, comma-separated; the default is every loaded topic.
func (h *SessionHandler) ProcessSession(c *gin.Context) {
	log := middleware.GetLogger(c)

	session, err := h.sessions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	doc, err := h.mappings.Get()
	if err != nil {
		log.WithError(err).Error("Failed to load mapping document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mapping document unavailable"})
		return
	}

	selected := h.topics
	if raw := c.Query("topics"); raw != "" {
		selected = topics.Select(h.topics, strings.Split(raw, ","))
	}

	processor := pipeline.New(session, selected, doc, log)
	outcome := processor.Process()
	report := processor.Report()

	if !outcome.OK() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  outcome.FailureReason(),
			"report": report,
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats returns every statistic of the stored history
func (s *Server) GetStats(c *gin.Context) {
	history, err := s.deps.History.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.deps.Analyzer.Analyze(history))
}

// GetHeatmapImage renders the number heatmap as PNG
func (s *Server) GetHeatmapImage(c *gin.Context) {
	history, err := s.deps.History.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	draws := 0
	for _, t := range history {
		draws += len(t.Draws())
	}

	data, err := s.deps.Heatmap.Generate(s.deps.Analyzer.NumberHeatmap(history), draws)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", data)
}

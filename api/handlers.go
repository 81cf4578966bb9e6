package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/engine"
)

// getBodies returns every catalog planet and comet
func (s *Server) getBodies(c *gin.Context) {
	planets := catalog.Planets()
	comets := catalog.Comets()
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"planets": planets,
			"comets":  comets,
		},
		"count": len(planets) + len(comets),
	})
}

// getBody returns a single planet or comet by name, case-insensitive
func (s *Server) getBody(c *gin.Context) {
	name := c.Param("name")
	if planet, ok := catalog.FindPlanet(name); ok {
		c.JSON(http.StatusOK, gin.H{"data": planet})
		return
	}
	for _, comet := range catalog.Comets() {
		if strings.EqualFold(comet.Name, name) {
			c.JSON(http.StatusOK, gin.H{"data": comet})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "body not found"})
}

// getState returns the latest published snapshot
func (s *Server) getState(c *gin.Context) {
	snap, version := s.publisher.Latest()
	if version == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "simulation not started"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snap, "version": version})
}

// postCommand queues one interaction for the frame loop
func (s *Server) postCommand(c *gin.Context) {
	if !s.limiter.GetLimiter(c.ClientIP()).Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limited"})
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var cmd engine.Command
	if err := json.Unmarshal(body, &cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed command: " + err.Error()})
		return
	}

	status, err := s.enqueue(cmd)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(status, gin.H{"queued": cmd.Kind})
}

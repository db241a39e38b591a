// Package server exposes the populated graph over HTTP: the canned
// analytical queries and basic node/edge statistics.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/datalab-ufg/vinculo/internal/analytics"
	"github.com/datalab-ufg/vinculo/internal/driver"
)

type Server struct {
	driver driver.GraphDriver
	runner *analytics.Runner
	log    *zap.Logger
}

func NewServer(d driver.GraphDriver, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		driver: d,
		runner: analytics.NewRunner(d, log),
		log:    log,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)
	r.GET("/queries", s.ListQueries)
	r.POST("/queries/:name", s.RunQuery)
	r.GET("/stats", s.Stats)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListQueries(c *gin.Context) {
	type entry struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var out []entry
	for _, q := range s.runner.List() {
		out = append(out, entry{Name: q.Name, Description: q.Description})
	}
	c.JSON(http.StatusOK, gin.H{"queries": out})
}

func (s *Server) RunQuery(c *gin.Context) {
	name := c.Param("name")

	result, err := s.runner.Run(c.Request.Context(), name)
	if err != nil {
		s.log.Error("query failed", zap.String("query", name), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv")
		if err := analytics.WriteCSV(c.Writer, result); err != nil {
			s.log.Error("csv export failed", zap.String("query", name), zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"columns": result.Columns, "rows": result.Rows})
}

func (s *Server) Stats(c *gin.Context) {
	nodes, err := s.countsFor(c, driver.NodeCountsQuery)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count nodes"})
		return
	}
	edges, err := s.countsFor(c, driver.EdgeCountsQuery)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count edges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"nodes": nodes, "edges": edges})
}

func (s *Server) countsFor(c *gin.Context, query string) (map[string]int64, error) {
	result, err := s.driver.ExecuteQuery(c.Request.Context(), query, nil)
	if err != nil {
		s.log.Error("stats query failed", zap.Error(err))
		return nil, err
	}

	counts := make(map[string]int64)
	for _, record := range result.Records {
		if len(record.Values) != 2 {
			continue
		}
		label, ok := record.Values[0].(string)
		if !ok {
			continue
		}
		count, ok := record.Values[1].(int64)
		if !ok {
			continue
		}
		counts[label] = count
	}
	return counts, nil
}

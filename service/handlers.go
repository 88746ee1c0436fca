package service

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/engine"
	"github.com/rushteam/matchkit/store"
)

func (s *Server) health(c *gin.Context) {
	st := s.engine.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"services_loaded": st.TotalServices,
		"strategies":      st.Strategies,
	})
}

func (s *Server) recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	topN := s.engine.DefaultTopN()
	if req.TopN != nil {
		topN = *req.TopN
	}
	recs, err := s.engine.Recommend(c.Request.Context(), &engine.Request{
		Preference: &req.Preference,
		TopN:       topN,
		Strategy:   req.Strategy,
		RequestID:  requestID(c),
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = s.engine.DefaultStrategy()
	}
	c.JSON(http.StatusOK, RecommendResponse{
		RequestID:       requestID(c),
		Strategy:        strategy,
		Total:           len(recs),
		Recommendations: toRecords(recs),
		Summary:         s.engine.Summarize(recs, &req.Preference),
	})
}

func (s *Server) explain(c *gin.Context) {
	var req ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.ServiceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_id is required"})
		return
	}

	rec, err := s.engine.Explain(c.Request.Context(), req.ServiceID, &req.Preference, req.Strategy)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = s.engine.DefaultStrategy()
	}
	c.JSON(http.StatusOK, ExplainResponse{
		RequestID:   requestID(c),
		Strategy:    strategy,
		Explanation: rec.Record(),
	})
}

func (s *Server) compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	topN := s.engine.DefaultTopN()
	if req.TopN != nil {
		topN = *req.TopN
	}
	results, err := s.engine.CompareStrategies(c.Request.Context(), &engine.Request{
		Preference: &req.Preference,
		TopN:       topN,
		RequestID:  requestID(c),
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	resp := CompareResponse{
		RequestID: requestID(c),
		Results:   make(map[string][]core.Record, len(results)),
	}
	for name, recs := range results {
		resp.Results[name] = toRecords(recs)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Stats())
}

func (s *Server) listServices(c *gin.Context) {
	svcs := s.engine.Services()
	if svcs == nil {
		svcs = []core.Service{}
	}
	c.JSON(http.StatusOK, gin.H{
		"total":    len(svcs),
		"services": svcs,
	})
}

func (s *Server) reload(c *gin.Context) {
	if err := s.engine.Reload(c.Request.Context()); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"total_services": s.engine.Stats().TotalServices,
	})
}

// requireStore 校验排除名单接口的存储依赖。
func (s *Server) requireStore(c *gin.Context) bool {
	if s.store == nil {
		s.abortWithError(c, core.NewDomainError(core.ModuleService, core.ErrorCodeNotSupported,
			"exclusion management requires a store backend"))
		return false
	}
	return true
}

func (s *Server) listExclusions(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	entries, err := s.store.HGetAll(c.Request.Context(), store.KeyExcluded)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	out := make([]ExclusionEntry, 0, len(entries))
	for id, reason := range entries {
		out = append(out, ExclusionEntry{ServiceID: id, Reason: string(reason)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceID < out[j].ServiceID })
	c.JSON(http.StatusOK, gin.H{
		"total":      len(out),
		"exclusions": out,
	})
}

func (s *Server) addExclusion(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	id := c.Param("id")

	var req ExclusionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}
	if req.Reason == "" {
		req.Reason = "manual"
	}

	if err := s.store.HSet(c.Request.Context(), store.KeyExcluded, id, []byte(req.Reason)); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service_id": id, "reason": req.Reason})
}

func (s *Server) removeExclusion(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	id := c.Param("id")
	if err := s.store.HDel(c.Request.Context(), store.KeyExcluded, id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service_id": id})
}

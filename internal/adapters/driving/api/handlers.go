package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

// stateCookie holds the OAuth state issued by /api/auth/login.
const stateCookie = "oauth_state"

// stateTTL is how long a login attempt may take.
const stateTTL = 10 * time.Minute

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// login redirects to GitHub's authorize page. The code exchange that
// follows is handled outside this service.
func (s *Server) login(c *gin.Context) {
	if s.loginURL == nil {
		fail(c, fmt.Errorf("%w: GitHub login is not configured", domain.ErrConfig))
		return
	}

	state := uuid.NewString()
	url, err := s.loginURL(state)
	if err != nil {
		fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, int(stateTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusFound, url)
}

func (s *Server) listRepositories(c *gin.Context) {
	repos, err := s.repository.ListRepositories(c.Request.Context(), githubToken(c.Request))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, repos)
}

// listFiles returns the flat tree entries; the resolved branch is reported
// in the X-Branch header.
func (s *Server) listFiles(c *gin.Context) {
	tree, err := s.repository.ListFiles(c.Request.Context(), githubToken(c.Request), c.Param("owner"), c.Param("repo"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("X-Branch", tree.Branch)
	c.JSON(http.StatusOK, tree.Entries)
}

func (s *Server) getFile(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		fail(c, domain.ErrMissingFields("path"))
		return
	}

	content, err := s.repository.GetFile(c.Request.Context(), githubToken(c.Request), c.Param("owner"), c.Param("repo"), path)
	if err != nil {
		fail(c, err)
		return
	}
	c.String(http.StatusOK, content)
}

func (s *Server) discoverFunctions(c *gin.Context) {
	fns, err := s.repository.DiscoverFunctions(c.Request.Context(), githubToken(c.Request), c.Param("owner"), c.Param("repo"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fns)
}

func (s *Server) analyze(c *gin.Context) {
	analysis, err := s.repository.Analyze(c.Request.Context(), githubToken(c.Request), c.Param("owner"), c.Param("repo"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) explainFunction(c *gin.Context) {
	var req domain.ExplanationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidInput, err))
		return
	}

	exp, err := s.explain.Explain(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, exp)
}

func (s *Server) explainUsage(c *gin.Context) {
	var req domain.UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidInput, err))
		return
	}

	usage, err := s.explain.ExplainUsage(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, usage)
}

func (s *Server) cacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.explain.CacheStats())
}

// Package clienttest runs an in-memory family API for client tests. It
// speaks the same wire format as the real server but keeps everything in
// maps and returns collections in insertion order.
package clienttest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/gateway"
)

type failure struct {
	status int
	detail string
}

type account struct {
	user     api.User
	password string
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	seq       int
	now       time.Time
	accounts  map[string]*account
	tokens    map[string]string
	members   []*api.Member
	events    []*api.Event
	posts     []*api.ForumPost
	ownPhotos map[string][]api.Photo
	failures  map[string]failure
	hits      map[string]int
}

// New starts the fake API; it is closed with the test.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		now:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		accounts:  make(map[string]*account),
		tokens:    make(map[string]string),
		ownPhotos: make(map[string][]api.Photo),
		failures:  make(map[string]failure),
		hits:      make(map[string]int),
	}

	router := gin.New()
	router.Use(s.track)
	s.routes(router.Group("/api"))
	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)
	return s
}

// Gateway returns a gateway pointed at the fake server.
func (s *Server) Gateway(tokens gateway.TokenSource) *gateway.Client {
	return gateway.New(s.URL, s.Client(), tokens, zerolog.Nop())
}

// SeedUser registers an account directly and returns it with a valid token.
func (s *Server) SeedUser(email, password, name, role string) (api.User, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createAccount(email, password, name, nil, role)
}

// ExpireToken makes every later request with token answer 401.
func (s *Server) ExpireToken(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// FailNext makes the next request matching "METHOD /api/path" fail.
func (s *Server) FailNext(method, path string, status int, detail string) {
	s.mu.Lock()
	s.failures[method+" "+path] = failure{status: status, detail: detail}
	s.mu.Unlock()
}

// Hits counts requests received for "METHOD /api/path".
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

func (s *Server) track(c *gin.Context) {
	key := c.Request.Method + " " + c.Request.URL.Path

	s.mu.Lock()
	s.hits[key]++
	f, failing := s.failures[key]
	delete(s.failures, key)
	s.mu.Unlock()

	if failing {
		c.AbortWithStatusJSON(f.status, gin.H{"detail": f.detail})
		return
	}
	c.Next()
}

func (s *Server) routes(r *gin.RouterGroup) {
	r.POST("/auth/register", s.register)
	r.POST("/auth/login", s.login)
	r.POST("/upload/public", s.upload)
	r.GET("/members/public", s.listPublicMembers)
	r.GET("/members/public/:id", s.getPublicMember)
	r.GET("/users/:id/public", s.publicProfile)

	authed := r.Group("", s.authenticate)
	authed.GET("/auth/me", func(c *gin.Context) { c.JSON(http.StatusOK, s.userOf(c)) })
	authed.GET("/auth/photos", s.listOwnPhotos)
	authed.POST("/auth/photos", s.addOwnPhoto)
	authed.DELETE("/auth/photos/:photoId", s.deleteOwnPhoto)
	authed.POST("/upload", s.upload)

	authed.GET("/members", s.listMembers)
	authed.POST("/members", s.createMember)
	authed.GET("/members/:id", s.getMember)
	authed.PUT("/members/:id", s.updateMember)
	authed.DELETE("/members/:id", s.deleteMember)
	authed.GET("/members/:id/photos", s.listMemberPhotos)
	authed.POST("/members/:id/photos", s.addMemberPhoto)
	authed.DELETE("/members/:id/photos/:photoId", s.deleteMemberPhoto)

	authed.GET("/events", s.listEvents)
	authed.POST("/events", s.createEvent)
	authed.GET("/events/:id", s.getEvent)
	authed.PUT("/events/:id", s.updateEvent)
	authed.DELETE("/events/:id", s.deleteEvent)

	authed.GET("/forum/posts", s.listPosts)
	authed.POST("/forum/posts", s.createPost)
	authed.GET("/forum/posts/:id", s.getPost)
	authed.PUT("/forum/posts/:id", s.updatePost)
	authed.DELETE("/forum/posts/:id", s.deletePost)
	authed.POST("/forum/posts/:id/replies", s.addReply)
	authed.DELETE("/forum/posts/:id/replies/:replyId", s.deleteReply)
}

func (s *Server) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	s.mu.Lock()
	userID, known := s.tokens[token]
	s.mu.Unlock()
	if !known {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Token expired"})
		return
	}
	c.Set("user_id", userID)
	c.Next()
}

func (s *Server) userOf(c *gin.Context) api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[c.GetString("user_id")].user
}

// nextID must be called with mu held.
func (s *Server) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%d", prefix, s.seq)
}

// tick must be called with mu held; every record gets a distinct time.
func (s *Server) tick() time.Time {
	s.now = s.now.Add(time.Minute)
	return s.now
}

func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

func deleted(c *gin.Context, what string) {
	c.JSON(http.StatusOK, gin.H{"message": what + " deleted successfully"})
}

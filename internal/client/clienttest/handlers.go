package clienttest

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
)

// createAccount must be called with mu held.
func (s *Server) createAccount(email, password, name string, photoURL *string, role string) (api.User, string) {
	user := api.User{
		ID:        s.nextID("u"),
		Email:     strings.ToLower(email),
		Name:      name,
		PhotoURL:  photoURL,
		Role:      role,
		CreatedAt: s.tick(),
	}
	s.accounts[user.ID] = &account{user: user, password: password}
	token := s.nextID("token-")
	s.tokens[token] = user.ID
	return user, token
}

func (s *Server) register(c *gin.Context) {
	var req struct {
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Name     string  `json:"name"`
		PhotoURL *string `json:"photo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" || req.Name == "" {
		detail(c, http.StatusBadRequest, "email, password and name are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.Email == strings.ToLower(req.Email) {
			detail(c, http.StatusBadRequest, "Email already registered")
			return
		}
	}
	user, token := s.createAccount(req.Email, req.Password, req.Name, req.PhotoURL, "member")
	c.JSON(http.StatusOK, api.AuthResponse{AccessToken: token, TokenType: "bearer", User: user})
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = c.ShouldBindJSON(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.Email == strings.ToLower(req.Email) && acc.password == req.Password {
			token := s.nextID("token-")
			s.tokens[token] = acc.user.ID
			c.JSON(http.StatusOK, api.AuthResponse{AccessToken: token, TokenType: "bearer", User: acc.user})
			return
		}
	}
	detail(c, http.StatusUnauthorized, "Invalid credentials")
}

func (s *Server) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		detail(c, http.StatusBadRequest, "file is required")
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		detail(c, http.StatusBadRequest, "unsupported media type")
		return
	}

	s.mu.Lock()
	id := s.nextID("f")
	s.mu.Unlock()
	c.JSON(http.StatusOK, api.UploadResult{URL: s.URL + "/media/" + id + "/" + file.Filename})
}

func (s *Server) bindPhoto(c *gin.Context) (api.Photo, bool) {
	var req api.PhotoInput
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.PhotoURL) == "" {
		detail(c, http.StatusBadRequest, "photo_url is required")
		return api.Photo{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return api.Photo{ID: s.nextID("p"), PhotoURL: req.PhotoURL, Caption: req.Caption, AddedAt: s.tick()}, true
}

func (s *Server) listOwnPhotos(c *gin.Context) {
	id := c.GetString("user_id")
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, nonNil(s.ownPhotos[id]))
}

func (s *Server) addOwnPhoto(c *gin.Context) {
	photo, ok := s.bindPhoto(c)
	if !ok {
		return
	}
	id := c.GetString("user_id")
	s.mu.Lock()
	s.ownPhotos[id] = append(s.ownPhotos[id], photo)
	s.mu.Unlock()
	c.JSON(http.StatusOK, photo)
}

func (s *Server) deleteOwnPhoto(c *gin.Context) {
	id := c.GetString("user_id")
	s.mu.Lock()
	defer s.mu.Unlock()
	photos, ok := removePhoto(s.ownPhotos[id], c.Param("photoId"))
	if !ok {
		detail(c, http.StatusNotFound, "Photo not found")
		return
	}
	s.ownPhotos[id] = photos
	deleted(c, "Photo")
}

func (s *Server) publicProfile(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[c.Param("id")]
	if !ok {
		detail(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, api.PublicProfile{
		ID:       acc.user.ID,
		Name:     acc.user.Name,
		PhotoURL: acc.user.PhotoURL,
		Photos:   nonNil(s.ownPhotos[acc.user.ID]),
	})
}

func removePhoto(photos []api.Photo, id string) ([]api.Photo, bool) {
	i := slices.IndexFunc(photos, func(p api.Photo) bool { return p.ID == id })
	if i < 0 {
		return photos, false
	}
	return slices.Delete(photos, i, i+1), true
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return slices.Clone(items)
}

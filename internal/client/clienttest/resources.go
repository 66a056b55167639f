package clienttest

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
)

func copyMember(m *api.Member) api.Member {
	out := *m
	out.Photos = nonNil(m.Photos)
	return out
}

// ownedMember must be called with mu held.
func (s *Server) ownedMember(c *gin.Context) (*api.Member, bool) {
	for _, m := range s.members {
		if m.ID == c.Param("id") && m.CreatedBy == c.GetString("user_id") {
			return m, true
		}
	}
	detail(c, http.StatusNotFound, "Member not found")
	return nil, false
}

func (s *Server) listMembers(c *gin.Context) {
	owner := c.GetString("user_id")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []api.Member{}
	for _, m := range s.members {
		if m.CreatedBy == owner {
			out = append(out, copyMember(m))
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listPublicMembers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, copyMember(m))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getPublicMember(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.ID == c.Param("id") {
			c.JSON(http.StatusOK, copyMember(m))
			return
		}
	}
	detail(c, http.StatusNotFound, "Member not found")
}

func (s *Server) getMember(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.ownedMember(c); ok {
		c.JSON(http.StatusOK, copyMember(m))
	}
}

func (s *Server) createMember(c *gin.Context) {
	var req api.MemberFields
	if err := c.ShouldBindJSON(&req); err != nil || blank(req.Name) || blank(req.Relationship) {
		detail(c, http.StatusBadRequest, "name and relationship are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m := &api.Member{
		ID:           s.nextID("m"),
		Name:         *req.Name,
		Relationship: *req.Relationship,
		CreatedBy:    c.GetString("user_id"),
		CreatedAt:    s.tick(),
	}
	applyMember(m, req)
	s.members = append(s.members, m)
	c.JSON(http.StatusOK, copyMember(m))
}

func (s *Server) updateMember(c *gin.Context) {
	var req api.MemberFields
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.ownedMember(c)
	if !ok {
		return
	}
	if req == (api.MemberFields{}) {
		detail(c, http.StatusBadRequest, "No fields to update")
		return
	}
	if req.ParentID != nil && *req.ParentID == m.ID {
		detail(c, http.StatusBadRequest, "Parent would create a cycle")
		return
	}
	applyMember(m, req)
	c.JSON(http.StatusOK, copyMember(m))
}

func (s *Server) deleteMember(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.ownedMember(c)
	if !ok {
		return
	}
	s.members = slices.DeleteFunc(s.members, func(other *api.Member) bool { return other == m })
	for _, child := range s.members {
		if child.ParentID != nil && *child.ParentID == m.ID {
			child.ParentID = nil
		}
	}
	deleted(c, "Member")
}

func (s *Server) listMemberPhotos(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.ownedMember(c); ok {
		c.JSON(http.StatusOK, nonNil(m.Photos))
	}
}

func (s *Server) addMemberPhoto(c *gin.Context) {
	s.mu.Lock()
	_, ok := s.ownedMember(c)
	s.mu.Unlock()
	if !ok {
		return
	}
	photo, ok := s.bindPhoto(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.ownedMember(c); ok {
		m.Photos = append(m.Photos, photo)
		c.JSON(http.StatusOK, photo)
	}
}

func (s *Server) deleteMemberPhoto(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.ownedMember(c)
	if !ok {
		return
	}
	photos, found := removePhoto(m.Photos, c.Param("photoId"))
	if !found {
		detail(c, http.StatusNotFound, "Photo not found")
		return
	}
	m.Photos = photos
	deleted(c, "Photo")
}

func applyMember(m *api.Member, req api.MemberFields) {
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Relationship != nil {
		m.Relationship = *req.Relationship
	}
	m.BirthDate = patch(m.BirthDate, req.BirthDate)
	m.Bio = patch(m.Bio, req.Bio)
	m.PhotoURL = patch(m.PhotoURL, req.PhotoURL)
	m.ParentID = patch(m.ParentID, req.ParentID)
}

// patch leaves current alone for nil and clears it for "".
func patch(current, next *string) *string {
	if next == nil {
		return current
	}
	if *next == "" {
		return nil
	}
	v := *next
	return &v
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func (s *Server) findEvent(c *gin.Context) (*api.Event, bool) {
	for _, e := range s.events {
		if e.ID == c.Param("id") {
			return e, true
		}
	}
	detail(c, http.StatusNotFound, "Event not found")
	return nil, false
}

func (s *Server) canModify(c *gin.Context, ownerID string) bool {
	userID := c.GetString("user_id")
	if userID == ownerID || s.accounts[userID].user.IsAdmin() {
		return true
	}
	detail(c, http.StatusForbidden, "Not allowed to modify this resource")
	return false
}

func (s *Server) listEvents(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, *e)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getEvent(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.findEvent(c); ok {
		c.JSON(http.StatusOK, *e)
	}
}

func (s *Server) createEvent(c *gin.Context) {
	var req api.EventFields
	if err := c.ShouldBindJSON(&req); err != nil || blank(req.Title) || blank(req.EventDate) {
		detail(c, http.StatusBadRequest, "title and event_date are required")
		return
	}
	date, err := api.ParseDate(*req.EventDate)
	if err != nil {
		detail(c, http.StatusBadRequest, "event_date must be YYYY-MM-DD")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := &api.Event{
		ID:          s.nextID("e"),
		Title:       *req.Title,
		EventDate:   date,
		Description: patch(nil, req.Description),
		EventTime:   patch(nil, req.EventTime),
		Location:    patch(nil, req.Location),
		CreatedBy:   c.GetString("user_id"),
		CreatedAt:   s.tick(),
	}
	s.events = append(s.events, e)
	c.JSON(http.StatusOK, *e)
}

func (s *Server) updateEvent(c *gin.Context) {
	var req api.EventFields
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.findEvent(c)
	if !ok || !s.canModify(c, e.CreatedBy) {
		return
	}
	if req.EventDate != nil {
		date, err := api.ParseDate(*req.EventDate)
		if err != nil {
			detail(c, http.StatusBadRequest, "event_date must be YYYY-MM-DD")
			return
		}
		e.EventDate = date
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	e.Description = patch(e.Description, req.Description)
	e.EventTime = patch(e.EventTime, req.EventTime)
	e.Location = patch(e.Location, req.Location)
	c.JSON(http.StatusOK, *e)
}

func (s *Server) deleteEvent(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.findEvent(c)
	if !ok || !s.canModify(c, e.CreatedBy) {
		return
	}
	s.events = slices.DeleteFunc(s.events, func(other *api.Event) bool { return other == e })
	deleted(c, "Event")
}

func copyPost(p *api.ForumPost) api.ForumPost {
	out := *p
	out.Replies = nonNil(p.Replies)
	return out
}

func (s *Server) findPost(c *gin.Context) (*api.ForumPost, bool) {
	for _, p := range s.posts {
		if p.ID == c.Param("id") {
			return p, true
		}
	}
	detail(c, http.StatusNotFound, "Post not found")
	return nil, false
}

func bindPost(c *gin.Context) (api.PostInput, bool) {
	var req api.PostInput
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		detail(c, http.StatusBadRequest, "title and content are required")
		return req, false
	}
	return req, true
}

// listPosts answers newest first, like the real server.
func (s *Server) listPosts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.ForumPost, 0, len(s.posts))
	for i := len(s.posts) - 1; i >= 0; i-- {
		out = append(out, copyPost(s.posts[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getPost(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.findPost(c); ok {
		c.JSON(http.StatusOK, copyPost(p))
	}
}

func (s *Server) createPost(c *gin.Context) {
	req, ok := bindPost(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	author := s.accounts[c.GetString("user_id")].user
	p := &api.ForumPost{
		ID:          s.nextID("post"),
		Title:       req.Title,
		Content:     req.Content,
		ContentHTML: "<p>" + req.Content + "</p>\n",
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		CreatedAt:   s.tick(),
	}
	s.posts = append(s.posts, p)
	c.JSON(http.StatusOK, copyPost(p))
}

func (s *Server) updatePost(c *gin.Context) {
	req, ok := bindPost(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.findPost(c)
	if !ok || !s.canModify(c, p.AuthorID) {
		return
	}
	updated := s.tick()
	p.Title, p.Content, p.UpdatedAt = req.Title, req.Content, &updated
	p.ContentHTML = "<p>" + req.Content + "</p>\n"
	c.JSON(http.StatusOK, copyPost(p))
}

func (s *Server) deletePost(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.findPost(c)
	if !ok || !s.canModify(c, p.AuthorID) {
		return
	}
	s.posts = slices.DeleteFunc(s.posts, func(other *api.ForumPost) bool { return other == p })
	deleted(c, "Post")
}

func (s *Server) addReply(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		detail(c, http.StatusBadRequest, "content is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.findPost(c)
	if !ok {
		return
	}
	author := s.accounts[c.GetString("user_id")].user
	reply := api.Reply{
		ID:          s.nextID("r"),
		Content:     req.Content,
		ContentHTML: "<p>" + req.Content + "</p>\n",
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		CreatedAt:   s.tick(),
	}
	p.Replies = append(p.Replies, reply)
	c.JSON(http.StatusOK, reply)
}

func (s *Server) deleteReply(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.findPost(c)
	if !ok {
		return
	}
	i := slices.IndexFunc(p.Replies, func(r api.Reply) bool { return r.ID == c.Param("replyId") })
	if i < 0 {
		detail(c, http.StatusNotFound, "Reply not found")
		return
	}
	if !s.canModify(c, p.Replies[i].AuthorID) {
		return
	}
	p.Replies = slices.Delete(p.Replies, i, i+1)
	deleted(c, "Reply")
}

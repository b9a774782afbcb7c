package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	announcementdomain "github.com/nextlab/researchdesk/internal/announcement/domain"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type createAnnouncementRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

func (s *Server) CreateAnnouncement(c *gin.Context) {
	var req createAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.announcementSvc.Create(c.Request.Context(), announcementdomain.CreateAnnouncementRequest{
		Title:  strings.TrimSpace(req.Title),
		Body:   req.Body,
		Pinned: req.Pinned,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAnnouncements(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Pinned string `form:"pinned"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	pinned, err := parseOptionalBool(query.Pinned)
	if err != nil {
		AbortWithError(c, newValidationError("pinned", "invalid_pinned", "invalid pinned"))
		return
	}

	resp, err := s.announcementSvc.List(c.Request.Context(), announcementdomain.ListAnnouncementRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Pinned:    pinned,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAnnouncementByID(c *gin.Context) {
	resp, err := s.announcementSvc.GetByID(c.Request.Context(), announcementdomain.GetAnnouncementRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateAnnouncementRequest struct {
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Pinned *bool   `json:"pinned"`
}

func (s *Server) UpdateAnnouncement(c *gin.Context) {
	var req updateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.announcementSvc.Update(c.Request.Context(), announcementdomain.UpdateAnnouncementRequest{
		ID:     strings.TrimSpace(c.Param("id")),
		Title:  req.Title,
		Body:   req.Body,
		Pinned: req.Pinned,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAnnouncement(c *gin.Context) {
	err := s.announcementSvc.Delete(c.Request.Context(), announcementdomain.GetAnnouncementRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isAnnouncementValidationError(err error) bool {
	switch err {
	case announcementdomain.ErrInvalidCompany,
		announcementdomain.ErrInvalidMember,
		announcementdomain.ErrInvalidID,
		announcementdomain.ErrInvalidTitle:
		return true
	default:
		return false
	}
}

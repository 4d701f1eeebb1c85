package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flux-web/internal/domain"
	"flux-web/internal/usecase"
)

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
	Page      string `json:"page"`
}

type chatResponse struct {
	SessionID string               `json:"sessionId"`
	Messages  []domain.ChatMessage `json:"messages"`
	Reply     domain.ChatMessage   `json:"reply"`
	Page      string               `json:"page"`
}

type contactRequest struct {
	usecase.ContactForm
	SenderID string `json:"sender_id"`
}

// publicRoutes serve the marketing site.
func (h *Handler) publicRoutes(r *gin.Engine) {
	r.POST("/chat", h.sendChat)
	r.GET("/chat/:sessionId/messages", h.chatHistory)

	if h.svc.Contact != nil {
		r.POST("/contact", h.submitContact)
	}
	if h.svc.Catalog != nil {
		r.GET("/services", h.listServices)
		r.GET("/services/count", h.countServices)
		r.GET("/projects", h.listProjects)
		r.GET("/projects/featured", h.featuredProjects)
		r.GET("/projects/stats", h.projectStats)
		r.GET("/projects/category/:category", h.projectsByCategory)
	}
}

func (h *Handler) sendChat(c *gin.Context) {
	var req chatRequest
	if !h.bind(c, &req) {
		return
	}
	out, err := h.svc.Chat.Send(c.Request.Context(), usecase.SendInput{
		SessionID: req.SessionID,
		Text:      req.Message,
		Page:      req.Page,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chatResponse{
		SessionID: out.SessionID,
		Messages:  out.Messages,
		Reply:     out.Reply,
		Page:      string(out.Page),
	})
}

func (h *Handler) chatHistory(c *gin.Context) {
	msgs, err := h.svc.Chat.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": c.Param("sessionId"), "messages": msgs})
}

func (h *Handler) submitContact(c *gin.Context) {
	var req contactRequest
	if !h.bind(c, &req) {
		return
	}
	form := req.ContactForm
	form.SenderID = req.SenderID
	msg, err := h.svc.Contact.Submit(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) listServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog.ListServices(c.Request.Context()))
}

func (h *Handler) countServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.svc.Catalog.ServiceCount(c.Request.Context())})
}

func (h *Handler) listProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog.ListProjects(c.Request.Context()))
}

func (h *Handler) featuredProjects(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Catalog.FeaturedProjects(c.Request.Context(), limit))
}

func (h *Handler) projectsByCategory(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog.ProjectsByCategory(c.Request.Context(), c.Param("category")))
}

func (h *Handler) projectStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog.ProjectStats(c.Request.Context()))
}

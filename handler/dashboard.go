package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flux-web/internal/domain"
	"flux-web/internal/usecase"
)

type approveRequest struct {
	BoothID string `json:"booth_id"`
}

type attendeeRequest struct {
	AttendeeID string `json:"attendee_id"`
}

type roleRequest struct {
	Role domain.Role `json:"role"`
}

// dashboardRoutes serve the expo management dashboard. Caller identity
// arrives in request fields; authentication happens upstream.
func (h *Handler) dashboardRoutes(r *gin.Engine) {
	if s := h.svc.Expos; s != nil {
		r.GET("/expos", func(c *gin.Context) {
			expos, err := s.List(c.Request.Context(), expoFilter(c))
			if err != nil {
				h.fail(c, err)
				return
			}
			respondPage(h, c, expos)
		})
		r.GET("/expos/:id", func(c *gin.Context) {
			e, err := s.Get(c.Request.Context(), c.Param("id"))
			h.respond(c, http.StatusOK, e, err)
		})
		r.POST("/expos", func(c *gin.Context) {
			var e domain.Expo
			if !h.bind(c, &e) {
				return
			}
			created, err := s.Create(c.Request.Context(), e)
			h.respond(c, http.StatusCreated, created, err)
		})
		r.PUT("/expos/:id", func(c *gin.Context) {
			var e domain.Expo
			if !h.bind(c, &e) {
				return
			}
			updated, err := s.Update(c.Request.Context(), c.Param("id"), e)
			h.respond(c, http.StatusOK, updated, err)
		})
		r.DELETE("/expos/:id", func(c *gin.Context) {
			h.respondEmpty(c, s.Delete(c.Request.Context(), c.Param("id")))
		})
	}

	if s := h.svc.Booths; s != nil {
		r.GET("/expos/:id/booths", func(c *gin.Context) {
			booths, err := s.List(c.Request.Context(), c.Param("id"), usecase.BoothFilter{
				Size:   domain.BoothSize(c.Query("size")),
				Status: domain.BoothStatus(c.Query("status")),
				Search: c.Query("search"),
			})
			if err != nil {
				h.fail(c, err)
				return
			}
			respondPage(h, c, booths)
		})
		r.GET("/expos/:id/booths/available", func(c *gin.Context) {
			booths, err := s.Available(c.Request.Context(), c.Param("id"), domain.BoothSize(c.Query("size")))
			h.respond(c, http.StatusOK, booths, err)
		})
		r.POST("/expos/:id/booths", func(c *gin.Context) {
			var b domain.Booth
			if !h.bind(c, &b) {
				return
			}
			b.ExpoID = c.Param("id")
			created, err := s.Create(c.Request.Context(), b)
			h.respond(c, http.StatusCreated, created, err)
		})
		r.PUT("/booths/:id", func(c *gin.Context) {
			var u usecase.BoothUpdate
			if !h.bind(c, &u) {
				return
			}
			updated, err := s.Update(c.Request.Context(), c.Param("id"), u)
			h.respond(c, http.StatusOK, updated, err)
		})
		r.DELETE("/booths/:id", func(c *gin.Context) {
			h.respondEmpty(c, s.Delete(c.Request.Context(), c.Param("id")))
		})
	}

	if s := h.svc.Sessions; s != nil {
		r.GET("/expos/:id/sessions", func(c *gin.Context) {
			sessions, err := s.List(c.Request.Context(), c.Param("id"), sessionFilter(c))
			if err != nil {
				h.fail(c, err)
				return
			}
			respondPage(h, c, sessions)
		})
		r.POST("/expos/:id/sessions", func(c *gin.Context) {
			var sess domain.Session
			if !h.bind(c, &sess) {
				return
			}
			sess.ExpoID = c.Param("id")
			created, err := s.Create(c.Request.Context(), sess)
			h.respond(c, http.StatusCreated, created, err)
		})
		r.PUT("/sessions/:id", func(c *gin.Context) {
			var sess domain.Session
			if !h.bind(c, &sess) {
				return
			}
			updated, err := s.Update(c.Request.Context(), c.Param("id"), sess)
			h.respond(c, http.StatusOK, updated, err)
		})
		r.DELETE("/sessions/:id", func(c *gin.Context) {
			h.respondEmpty(c, s.Delete(c.Request.Context(), c.Param("id")))
		})
	}

	if s := h.svc.Applications; s != nil {
		r.GET("/applications", func(c *gin.Context) {
			apps, err := s.List(c.Request.Context(), applicationFilter(c))
			if err != nil {
				h.fail(c, err)
				return
			}
			respondPage(h, c, apps)
		})
		r.POST("/applications", func(c *gin.Context) {
			var a domain.Application
			if !h.bind(c, &a) {
				return
			}
			created, err := s.Submit(c.Request.Context(), a)
			h.respond(c, http.StatusCreated, created, err)
		})
		r.POST("/applications/:id/approve", func(c *gin.Context) {
			var req approveRequest
			if !h.bind(c, &req) {
				return
			}
			app, err := s.Approve(c.Request.Context(), c.Param("id"), req.BoothID)
			h.respond(c, http.StatusOK, app, err)
		})
		r.POST("/applications/:id/reject", func(c *gin.Context) {
			app, err := s.Reject(c.Request.Context(), c.Param("id"))
			h.respond(c, http.StatusOK, app, err)
		})
	}

	if s := h.svc.Registrations; s != nil {
		r.GET("/expos/:id/registrations", func(c *gin.Context) {
			regs, err := s.ForExpo(c.Request.Context(), c.Param("id"))
			h.respond(c, http.StatusOK, regs, err)
		})
		r.POST("/expos/:id/registrations", func(c *gin.Context) {
			var req attendeeRequest
			if !h.bind(c, &req) {
				return
			}
			reg, err := s.RegisterExpo(c.Request.Context(), c.Param("id"), req.AttendeeID)
			h.respond(c, http.StatusCreated, reg, err)
		})
		r.DELETE("/expos/:id/registrations/:attendeeId", func(c *gin.Context) {
			h.respondEmpty(c, s.UnregisterExpo(c.Request.Context(), c.Param("id"), c.Param("attendeeId")))
		})
		r.POST("/sessions/:id/registrations", func(c *gin.Context) {
			var req attendeeRequest
			if !h.bind(c, &req) {
				return
			}
			reg, err := s.RegisterSession(c.Request.Context(), c.Param("id"), req.AttendeeID)
			h.respond(c, http.StatusCreated, reg, err)
		})
		r.DELETE("/sessions/:id/registrations/:attendeeId", func(c *gin.Context) {
			h.respondEmpty(c, s.UnregisterSession(c.Request.Context(), c.Param("id"), c.Param("attendeeId")))
		})
		r.GET("/attendees/:id/registrations", func(c *gin.Context) {
			regs, err := s.ForAttendee(c.Request.Context(), c.Param("id"))
			h.respond(c, http.StatusOK, regs, err)
		})
	}

	if s := h.svc.Messages; s != nil {
		r.GET("/messages", func(c *gin.Context) {
			msgs, err := s.Inbox(c.Request.Context(), c.Query("user_id"))
			if err != nil {
				h.fail(c, err)
				return
			}
			respondPage(h, c, msgs)
		})
		r.POST("/messages", func(c *gin.Context) {
			var m domain.Message
			if !h.bind(c, &m) {
				return
			}
			sent, err := s.Send(c.Request.Context(), m)
			h.respond(c, http.StatusCreated, sent, err)
		})
		r.POST("/messages/:id/read", func(c *gin.Context) {
			m, err := s.MarkRead(c.Request.Context(), c.Param("id"))
			h.respond(c, http.StatusOK, m, err)
		})
	}

	if s := h.svc.Profiles; s != nil {
		r.GET("/profiles", func(c *gin.Context) {
			profiles, err := s.List(c.Request.Context(), usecase.ProfileFilter{
				Role:   domain.Role(c.Query("role")),
				Search: c.Query("search"),
			})
			if err != nil {
				h.fail(c, err)
				return
			}
			respondPage(h, c, profiles)
		})
		r.GET("/profiles/:id", func(c *gin.Context) {
			p, err := s.Get(c.Request.Context(), c.Param("id"))
			h.respond(c, http.StatusOK, p, err)
		})
		r.PUT("/profiles/:id", func(c *gin.Context) {
			var u usecase.ProfileUpdate
			if !h.bind(c, &u) {
				return
			}
			p, err := s.UpdateProfile(c.Request.Context(), c.Param("id"), u)
			h.respond(c, http.StatusOK, p, err)
		})
		r.PUT("/profiles/:id/role", func(c *gin.Context) {
			var req roleRequest
			if !h.bind(c, &req) {
				return
			}
			p, err := s.UpdateRole(c.Request.Context(), c.Param("id"), req.Role)
			h.respond(c, http.StatusOK, p, err)
		})
	}

	if s := h.svc.Analytics; s != nil {
		r.GET("/analytics", func(c *gin.Context) {
			out, err := s.Overview(c.Request.Context(), expoFilter(c))
			h.respond(c, http.StatusOK, out, err)
		})
	}
}

func (h *Handler) respond(c *gin.Context, status int, body any, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(status, body)
}

func (h *Handler) respondEmpty(c *gin.Context, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func expoFilter(c *gin.Context) usecase.ExpoFilter {
	return usecase.ExpoFilter{Status: domain.ExpoStatus(c.Query("status")), Search: c.Query("search")}
}

func sessionFilter(c *gin.Context) usecase.SessionFilter {
	return usecase.SessionFilter{Location: c.Query("location"), Search: c.Query("search")}
}

func applicationFilter(c *gin.Context) usecase.ApplicationFilter {
	return usecase.ApplicationFilter{
		ExpoID:      c.Query("expo_id"),
		ExhibitorID: c.Query("exhibitor_id"),
		Status:      domain.ApplicationStatus(c.Query("status")),
		Search:      c.Query("search"),
	}
}

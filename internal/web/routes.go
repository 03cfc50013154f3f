package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-api/internal/handler"
)

type server struct {
	h      *handler.Handler
	health Checker
}

type loginRequest struct {
	Email    any `json:"email"`
	Password any `json:"password"`
}

func (s *server) signup(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		fail(c, err)
		return
	}
	ack, err := s.h.Register(c.Request.Context(), body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

// login accepts any JSON object. Non-string credentials count as missing.
func (s *server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid JSON body: " + err.Error()})
		return
	}
	email, _ := req.Email.(string)
	password, _ := req.Password.(string)

	p, err := s.h.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *server) book(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		fail(c, err)
		return
	}
	ack, err := s.h.Book(c.Request.Context(), body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (s *server) listByPath(c *gin.Context) {
	s.list(c, c.Param("email"))
}

func (s *server) listByQuery(c *gin.Context) {
	s.list(c, c.Query("email"))
}

func (s *server) list(c *gin.Context, email string) {
	apts, err := s.h.ListByEmail(c.Request.Context(), email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apts)
}

func (s *server) contact(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		fail(c, err)
		return
	}
	ack, err := s.h.SubmitContact(c.Request.Context(), body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (s *server) healthz(c *gin.Context) {
	if s.health != nil && !s.health.Serving() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// StatusOf maps a handler error kind to its HTTP status.
func StatusOf(k handler.Kind) int {
	switch k {
	case handler.KindValidationFailed, handler.KindInvalidAppointmentData:
		return http.StatusUnprocessableEntity
	case handler.KindDuplicateEmail, handler.KindMissingCredentials:
		return http.StatusBadRequest
	case handler.KindInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	var herr *handler.Error
	if !errors.As(err, &herr) {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(StatusOf(herr.Kind), gin.H{"detail": herr.Detail})
}

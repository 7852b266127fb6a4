package handlers

import (
	"log"
	"net/http"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HandleRegister, kullanıcı kayıt işlemini yönetir.
func (h *Handler) HandleRegister(c *gin.Context) {
	var form models.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, &services.Error{Kind: services.KindValidation, Message: "Invalid form.", Err: err})
		return
	}
	user, err := h.auth.Register(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.flash(c, "success", "Registration successful, please log in.")
	h.respond(c, http.StatusCreated, gin.H{"success": true, "user": user})
}

// HandleLogin, kullanıcı girişini yönetir.
func (h *Handler) HandleLogin(c *gin.Context) {
	h.login(c, h.userAuth)
}

// AdminLogin, sabit admin bilgileriyle girişi yönetir
func (h *Handler) AdminLogin(c *gin.Context) {
	h.login(c, h.adminAuth)
}

func (h *Handler) login(c *gin.Context, authenticator services.Authenticator) {
	var form models.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, &services.Error{Kind: services.KindValidation, Message: "Invalid form.", Err: err})
		return
	}
	identity, err := h.auth.Login(c.Request.Context(), sessionID(c), authenticator, services.Credentials{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.rotateSession(c); err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{
		"success":  true,
		"username": identity.Username,
		"is_admin": identity.IsAdmin,
	})
}

// rotateSession, birleştirilmiş oturumu yeni bir id altına taşır, eskisini
// siler ve çerezi yeniler
func (h *Handler) rotateSession(c *gin.Context) error {
	ctx := c.Request.Context()
	oldID := sessionID(c)
	state, err := h.sessions.Get(ctx, oldID)
	if err != nil {
		return &services.Error{Kind: services.KindInternal, Message: "Could not load your session.", Err: err}
	}
	newID := uuid.New().String()
	if err := h.sessions.Put(ctx, newID, state); err != nil {
		return &services.Error{Kind: services.KindInternal, Message: "Could not save your session.", Err: err}
	}
	if err := h.sessions.Delete(ctx, oldID); err != nil {
		log.Printf("rotateSession - Error deleting old session %s: %v", oldID, err)
	}
	c.SetCookie(SessionCookie, newID, sessionMaxAge, "/", "", false, true)
	c.Set(sessionKey, newID)
	log.Printf("rotateSession - %s -> %s", oldID, newID)
	return nil
}

// UserLogout, oturumdaki tüm durumu siler ve çerezi temizler.
func (h *Handler) UserLogout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), sessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	h.respond(c, http.StatusOK, gin.H{"success": true})
}

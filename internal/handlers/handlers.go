package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie, ziyaretçinin oturum id'sini taşıyan çerez
const SessionCookie = "session_id"

const sessionMaxAge = 3600 * 24 * 30

const sessionKey = "session_id"

// DBInterface, yönetim paneli işlemleri için veritabanı metotlarını tanımlar.
type DBInterface interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, userID int) error
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	CountRows(ctx context.Context, table string) (int, error)
}

// Dependencies, Handler'ın ihtiyaç duyduğu servisler
type Dependencies struct {
	DB        DBInterface
	Sessions  database.SessionStore
	Catalog   *database.Catalog
	Carts     *services.CartService
	Wishlists *services.WishlistService
	Auth      *services.AuthService
	Checkout  *services.CheckoutService
	UserAuth  services.Authenticator
	AdminAuth services.Authenticator
}

// Handler, HTTP isteklerini yönetir.
type Handler struct {
	db        DBInterface
	sessions  database.SessionStore
	catalog   *database.Catalog
	carts     *services.CartService
	wishlists *services.WishlistService
	auth      *services.AuthService
	checkout  *services.CheckoutService
	userAuth  services.Authenticator
	adminAuth services.Authenticator
}

// NewHandler, yeni bir Handler örneği oluşturur.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		db:        deps.DB,
		sessions:  deps.Sessions,
		catalog:   deps.Catalog,
		carts:     deps.Carts,
		wishlists: deps.Wishlists,
		auth:      deps.Auth,
		checkout:  deps.Checkout,
		userAuth:  deps.UserAuth,
		adminAuth: deps.AdminAuth,
	}
}

// SessionMiddleware, her ziyaretçiye bir oturum id'si atar ve istemci IP'sini
// context'e ekler
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, _ := c.Cookie(SessionCookie)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.New().String()
			c.SetCookie(SessionCookie, sessionID, sessionMaxAge, "/", "", false, true)
			log.Printf("SessionMiddleware - Created new session ID: %s", sessionID)
		}
		c.Set(sessionKey, sessionID)
		c.Request = c.Request.WithContext(services.WithClientIP(c.Request.Context(), c.ClientIP()))
		c.Next()
	}
}

// AuthUserMiddleware, giriş yapmamış ziyaretçileri durdurur.
func (h *Handler) AuthUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := h.sessions.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			h.fail(c, err)
			c.Abort()
			return
		}
		if !state.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Please log in to continue."})
			return
		}
		c.Next()
	}
}

// AdminMiddleware, yönetim rotalarını yalnızca admin oturumuna açar
func (h *Handler) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := h.sessions.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			h.fail(c, err)
			c.Abort()
			return
		}
		if !state.IsAdmin {
			log.Printf("AdminMiddleware - Rejected %s %s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Admin login required."})
			return
		}
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// popFlashes, oturumdaki flash mesajlarını alır ve temizler
func (h *Handler) popFlashes(c *gin.Context) []models.Flash {
	ctx := c.Request.Context()
	state, err := h.sessions.Get(ctx, sessionID(c))
	if err != nil {
		log.Printf("popFlashes - Error loading session: %v", err)
		return []models.Flash{}
	}
	flashes := state.PopFlashes()
	if len(flashes) > 0 {
		if err := h.sessions.Put(ctx, sessionID(c), state); err != nil {
			log.Printf("popFlashes - Error saving session: %v", err)
		}
	}
	return flashes
}

// flash, sonraki yanıtta gösterilecek bir mesaj ekler
func (h *Handler) flash(c *gin.Context, category, message string) {
	ctx := c.Request.Context()
	state, err := h.sessions.Get(ctx, sessionID(c))
	if err != nil {
		log.Printf("flash - Error loading session: %v", err)
		return
	}
	state.AddFlash(category, message)
	if err := h.sessions.Put(ctx, sessionID(c), state); err != nil {
		log.Printf("flash - Error saving session: %v", err)
	}
}

// respond, yanıta bekleyen flash mesajlarını ekleyip JSON yazar
func (h *Handler) respond(c *gin.Context, status int, data gin.H) {
	data["flashes"] = h.popFlashes(c)
	c.JSON(status, data)
}

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	case services.KindAuth:
		return http.StatusUnauthorized
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindPaymentDeclined:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// fail, servis hatasını HTTP durum koduna çevirir
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(services.KindOf(err))
	if status == http.StatusInternalServerError {
		log.Printf("%s %s - Error: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	h.respond(c, status, gin.H{"success": false, "error": services.MessageOf(err)})
}

// idParam, :id parametresini pozitif bir tamsayı olarak çözer
func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

var errInvalidID = &services.Error{Kind: services.KindValidation, Message: "Invalid id."}

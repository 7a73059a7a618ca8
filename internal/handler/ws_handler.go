package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/config"
	"github.com/sekolahub/sekolahub-backend/internal/middleware"
	ws "github.com/sekolahub/sekolahub-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live attendance events to staff monitors.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// AttendanceMonitor godoc
// WS /ws/v1/attendance/monitor
// Upgrades to WebSocket and forwards the school's attendance events as they
// are published. Staff level and above only; super admins pick the school
// with ?school_id=.
func (h *WSHandler) AttendanceMonitor(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	if !p.Authenticated {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !p.Bypass() && !p.Role.AtLeast(authz.RoleStaff) {
		c.JSON(http.StatusForbidden, gin.H{"error": "staff access required"})
		return
	}

	schoolID, ok := h.monitorSchool(c, p)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Str("school_id", schoolID.String()).
		Logger()

	wsLog.Info().Msg("Monitor connected")

	sub := h.rdb.Subscribe(c.Request.Context(), config.CacheKey.AttendanceChannel(schoolID))
	defer sub.Close()

	// Reader goroutine: answers pings and unblocks the writer loop when the
	// client goes away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				return
			}
			if msg.Action == ws.ActionPing {
				_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Monitor disconnected")
			return
		case msg, open := <-ch:
			if !open {
				wsLog.Warn().Msg("Attendance subscription closed")
				return
			}
			if err := ws.WriteTyped(conn, ws.AttendanceResponse{
				Event: ws.EventAttendance,
				Data:  []byte(msg.Payload),
			}); err != nil {
				wsLog.Debug().Err(err).Msg("Monitor write failed")
				return
			}
		}
	}
}

// monitorSchool decides which school's channel the caller may watch.
func (h *WSHandler) monitorSchool(c *gin.Context, p authz.Principal) (uuid.UUID, bool) {
	if p.Role == authz.RoleSuperAdmin || p.Bypass() {
		id, err := uuid.Parse(c.Query("school_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "school_id query param required"})
			return uuid.Nil, false
		}
		return id, true
	}
	if p.SchoolID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "no school scope"})
		return uuid.Nil, false
	}
	return *p.SchoolID, true
}

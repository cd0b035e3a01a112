package user

import (
	"errors"
	"net/http"

	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/pubsub"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleStandingsWs streams standings snapshots for one contest. The
// current table is sent on connect, updated tables as submissions arrive.
func (h *Handler) handleStandingsWs(c *gin.Context) {
	contestID, err := parseID(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid contest id")
		return
	}

	_, rows, err := database.ComputeStandings(h.db, contestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "contest not found")
		} else {
			c.String(http.StatusInternalServerError, "failed to compute standings")
		}
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.S().Errorf("failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	// Initial snapshot, then live updates from the broker.
	initial := pubsub.FormatMessage("standings", rows)
	if err := conn.WriteMessage(websocket.TextMessage, initial); err != nil {
		return
	}

	msgChan, unsubscribe := pubsub.GetBroker().Subscribe(pubsub.StandingsTopic(contestID))
	defer unsubscribe()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for msg := range msgChan {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				zap.S().Warnf("error writing to websocket: %v", err)
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.S().Infof("websocket unexpected close error: %v", err)
			}
			break
		}
	}
	<-clientClosed

	zap.S().Debugf("standings websocket closed for contest %d", contestID)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-menu/events"
	"github.com/yeremiapane/restaurant-menu/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type EventsController struct {
	Hub *events.Hub
}

func NewEventsController(hub *events.Hub) *EventsController {
	return &EventsController{Hub: hub}
}

// MenuEvents upgrades to a websocket and streams menu change events until
// the client goes away.
func (ec *EventsController) MenuEvents(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	ec.Hub.Register(ws)
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	ec.Hub.Unregister(ws)
}

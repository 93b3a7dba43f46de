package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/utils"
)

// Event types
const (
	EventOrderCreated = "order_created"
	EventOrderUpdate  = "order_update"
	EventMenuUpdate   = "menu_update"
	EventDayClosed    = "day_closed"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// KDSHub holds the connected kitchen display and staff clients.
type KDSHub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var kdsHub = KDSHub{
	clients: make(map[*websocket.Conn]string),
}

func RegisterClient(conn *websocket.Conn, role string) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	kdsHub.clients[conn] = role
	utils.InfoLogger.WithField("role", role).Info("kds client connected")
}

func UnregisterClient(conn *websocket.Conn) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	if _, ok := kdsHub.clients[conn]; ok {
		delete(kdsHub.clients, conn)
		conn.Close()
	}
}

func ClientCount() int {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	return len(kdsHub.clients)
}

func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: order})
}

func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastMenuUpdate announces the ids of every currently selectable item.
func BroadcastMenuUpdate(selectable []uint) {
	broadcast(Message{Event: EventMenuUpdate, Data: map[string]interface{}{"selectable": selectable}})
}

func BroadcastDayClosed(close models.DayClose) {
	broadcast(Message{Event: EventDayClosed, Data: close})
}

// broadcast writes to every client; a client whose write fails is dropped.
func broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s message: %v", msg.Event, err)
		return
	}

	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()

	for conn, role := range kdsHub.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Dropping %s client after failed %s write: %v", role, msg.Event, err)
			delete(kdsHub.clients, conn)
			conn.Close()
		}
	}
	utils.InfoLogger.Debugf("Broadcast %s to %d clients", msg.Event, len(kdsHub.clients))
}

package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"

	"hostel_manager/allocation"
	"hostel_manager/constants"
)

var (
	redisClient *redis.Client

	roomClients = make(map[*websocket.Conn]bool)
	roomMutex   sync.Mutex
)

// InitRealtime connects the availability feed to redis. An empty addr
// disables the feed; bookings are unaffected.
func InitRealtime(addr string) {
	if addr == "" {
		log.Println("realtime availability feed disabled (no REDIS_ADDR)")
		return
	}
	redisClient = redis.NewClient(&redis.Options{Addr: addr})
}

// PublishAvailability pushes a room availability change onto the redis
// channel. Wired as the coordinator's OnAvailabilityChange hook.
func PublishAvailability(ev allocation.AvailabilityEvent) {
	if redisClient == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("failed to encode availability event: %v", err)
		return
	}
	if err := redisClient.Publish(context.Background(), constants.ROOM_AVAILABILITY_CHANNEL, payload).Err(); err != nil {
		log.Printf("failed to publish availability event: %v", err)
	}
}

// RoomsWebsocket streams availability changes to booking screens. The
// client fetches the initial snapshot from /api/rooms/available and
// then applies the deltas received here.
func RoomsWebsocket(c *websocket.Conn) {
	roomMutex.Lock()
	roomClients[c] = true
	roomMutex.Unlock()

	defer func() {
		roomMutex.Lock()
		delete(roomClients, c)
		roomMutex.Unlock()
		c.Close()
	}()

	if redisClient == nil {
		return
	}

	pubsub := redisClient.Subscribe(context.Background(), constants.ROOM_AVAILABILITY_CHANNEL)
	defer pubsub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Drain until the client hangs up.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	channel := pubsub.Channel()
	for {
		select {
		case msg, ok := <-channel:
			if !ok {
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

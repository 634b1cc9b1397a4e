// Package feed streams recipe change events to connected websocket clients.
package feed

import (
	"encoding/json"
	"log"

	"recipe-backend/internal/models"
)

const (
	EventRecipeCreated = "recipe_created"
	EventRecipeUpdated = "recipe_updated"
	EventRecipeDeleted = "recipe_deleted"
)

// Event is the wire format pushed to feed subscribers.
type Event struct {
	Event    string         `json:"event"`
	RecipeID int            `json:"recipeId"`
	Recipe   *models.Recipe `json:"recipe,omitempty"`
}

type client struct {
	id   string
	send chan []byte
}

// Hub fans recipe events out to all connected clients. All client state is
// owned by the run loop; handlers only touch the channels.
type Hub struct {
	clients    map[string]*client
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*client),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 16),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c.id] = c
		case c := <-h.unregister:
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for _, c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer; drop it rather than block the hub.
					delete(h.clients, c.id)
					close(c.send)
				}
			}
		}
	}
}

// Publish queues an event for every connected client.
func (h *Hub) Publish(event string, recipeID int, recipe *models.Recipe) {
	msg, err := json.Marshal(Event{Event: event, RecipeID: recipeID, Recipe: recipe})
	if err != nil {
		log.Printf("feed: marshal event: %v", err)
		return
	}
	h.broadcast <- msg
}

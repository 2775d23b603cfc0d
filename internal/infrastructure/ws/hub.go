package ws

// Hub fans record-change events out to the user's connected dashboards.
// All bookkeeping happens on the Run goroutine; the channels are the only
// way in.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	events     chan *Event

	clients map[string]map[*Client]struct{} // keyed by user id
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan *Event, 256),
		clients:    make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case cl := <-h.register:
			conns, ok := h.clients[cl.UserID]
			if !ok {
				conns = make(map[*Client]struct{})
				h.clients[cl.UserID] = conns
			}
			conns[cl] = struct{}{}

		case cl := <-h.unregister:
			if conns, ok := h.clients[cl.UserID]; ok {
				if _, present := conns[cl]; present {
					delete(conns, cl)
					close(cl.Send)
					if len(conns) == 0 {
						delete(h.clients, cl.UserID)
					}
				}
			}

		case ev := <-h.events:
			for cl := range h.clients[ev.UserID] {
				select {
				case cl.Send <- ev:
				default:
					// Slow consumer; drop the connection rather than block
					// the hub.
					delete(h.clients[ev.UserID], cl)
					close(cl.Send)
				}
			}
		}
	}
}

func (h *Hub) Register() chan<- *Client {
	return h.register
}

func (h *Hub) Unregister() chan<- *Client {
	return h.unregister
}

// Publish queues an event for delivery. Never blocks the caller: when the
// hub's buffer is full the event is dropped, live events are best-effort.
func (h *Hub) Publish(ev *Event) {
	select {
	case h.events <- ev:
	default:
	}
}

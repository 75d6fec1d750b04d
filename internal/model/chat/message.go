package chat

// IncomingMessage is a single conversation turn supplied by the web client.
type IncomingMessage struct {
	Message string `json:"message"`
}

// Request is the POST /chat body.
type Request struct {
	Messages []IncomingMessage `json:"messages"`
}

// Response is the POST /chat success body. Classified upstream failures
// also use it, carrying a fallback reply.
type Response struct {
	Reply string `json:"reply"`
}

// Health is the GET / body.
type Health struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

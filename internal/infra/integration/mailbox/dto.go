package mailbox

import "time"

type Reply struct {
	From       string    `json:"from"`
	Subject    string    `json:"subject"`
	Preview    string    `json:"preview"`
	ReceivedAt time.Time `json:"received_at"`
}


type searchRequest struct {
	Senders []string `json:"senders"`
	Since   string   `json:"since,omitempty"`
}

type searchResponse struct {
	Messages []Reply `json:"messages"`
}

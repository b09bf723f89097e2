package vonage

// sendRequest is the JSON body of POST /sms/json.
type sendRequest struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	From      string `json:"from"`
	To        string `json:"to"`
	Text      string `json:"text"`
	Type      string `json:"type"`
}

// sendResponse is the provider response. Status "0" on a message means
// accepted; anything else carries an error text.
type sendResponse struct {
	Messages []messageResult `json:"messages"`
}

type messageResult struct {
	Status    string `json:"status"`
	MessageID string `json:"message-id"`
	ErrorText string `json:"error-text"`
}

package todo

type Todo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	ImageURL    *string `json:"image_url"`
	OwnerID     string  `json:"owner_id"`
}

// Image is an attachment upload as received from the client.
type Image struct {
	Data        []byte
	ContentType string
	Filename    string
}

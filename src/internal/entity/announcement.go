package entity

type Announcement struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Audience  string `json:"audience"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

type UnreadCount struct {
	UnreadCount int `json:"unreadCount"`
}

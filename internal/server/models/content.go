package models

import "time"

// Publication is listed by Year descending, then Timestamp descending.
// Year is free text ("2024", "in press").
type Publication struct {
	ID        string    `json:"id"`
	Authors   string    `json:"authors"`
	Title     string    `json:"title"`
	Journal   string    `json:"journal"`
	Year      string    `json:"year"`
	Timestamp time.Time `json:"timestamp"`
}

// Person is a group member, listed in creation order.
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	Category  Category  `json:"category"`
	Photo     *string   `json:"photo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewsItem is listed by Date descending.
type NewsItem struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Headline  string    `json:"headline"`
	Content   string    `json:"content"`
	Tag       Tag       `json:"tag"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResearchArea is listed in creation order.
type ResearchArea struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Photo       *string   `json:"photo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

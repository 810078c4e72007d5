package types

import (
	"time"
)

// PrintedModel is one printed order link joined with its order, before the
// shop view dedupes by URL. Query projection only.
type PrintedModel struct {
	ID             uint      `json:"id"`
	OrderID        string    `json:"orderId"`
	LinkURL        string    `json:"url"`
	Copies         int       `json:"copies"`
	Printed        bool      `json:"printed"`
	CreatedAt      time.Time `json:"createdAt"`
	UserID         string    `json:"userId"`
	UserName       string    `json:"userName"`
	OrderStatus    string    `json:"orderStatus"`
	OrderCreatedAt time.Time `json:"orderCreatedAt"`
}

// PreviewResult is the model preview fetcher output. Partial is set whenever
// the scrape could not produce a complete answer; the endpoint still returns
// 200 with whatever was extracted.
type PreviewResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Author      string `json:"author"`
	Likes       int    `json:"likes"`
	Downloads   int    `json:"downloads"`
	Views       int    `json:"views"`
	Partial     bool   `json:"partial,omitempty"`
	Note        string `json:"note,omitempty"`
}

package handlers

import (
	"testing"

	"github.com/printforge/printforge-backend/internal/services"
)

func TestCreateOrderRequestLinkFormats(t *testing.T) {
	// Richest format wins when several are present.
	req := createOrderRequest{
		ModelLink:  "https://makerworld.com/models/1",
		ModelLinks: []string{"https://makerworld.com/models/2"},
		ModelLinksWithCopies: []services.LinkInput{
			{URL: "https://makerworld.com/models/3", Copies: 4},
		},
	}
	links := req.links()
	if len(links) != 1 || links[0].URL != "https://makerworld.com/models/3" || links[0].Copies != 4 {
		t.Fatalf("links = %+v", links)
	}

	req = createOrderRequest{
		ModelLink:  "https://makerworld.com/models/1",
		ModelLinks: []string{"https://makerworld.com/models/2", "https://makerworld.com/models/4"},
	}
	links = req.links()
	if len(links) != 2 {
		t.Fatalf("links = %+v", links)
	}
	for i, l := range links {
		if l.Copies != 1 {
			t.Fatalf("link %d copies = %d, want 1", i, l.Copies)
		}
	}
	if links[0].URL != "https://makerworld.com/models/2" {
		t.Fatalf("links = %+v", links)
	}

	req = createOrderRequest{ModelLink: "https://makerworld.com/models/1"}
	links = req.links()
	if len(links) != 1 || links[0].URL != "https://makerworld.com/models/1" || links[0].Copies != 1 {
		t.Fatalf("links = %+v", links)
	}

	empty := createOrderRequest{}
	if got := empty.links(); got != nil {
		t.Fatalf("empty request links = %+v, want nil", got)
	}
}

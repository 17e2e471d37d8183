package api

import (
	"context"

	"github.com/Zachkp/portfolio/internal/httpclient"
)

// Contact is the /contact resource.
type Contact struct {
	client Doer
}

func NewContact(client Doer) *Contact {
	return &Contact{client: client}
}

// Send submits the message. A transport failure is an error; a server that
// answers {"success": false} is not.
func (c *Contact) Send(ctx context.Context, msg ContactMessage) (ContactResult, error) {
	var out ContactResult
	if err := c.client.Post(ctx, "/contact", msg, &out); err != nil {
		return ContactResult{}, err
	}
	return out, nil
}

var _ Doer = (*httpclient.Client)(nil)

package mastodon

import (
	"context"
	"time"

	"github.com/ncobase/pagewalk/net/client"
	"github.com/ncobase/pagewalk/paging"
)

// NotificationsPath is the notifications endpoint
const NotificationsPath = "/api/v1/notifications"

// Notification types
const (
	TypeMention       = "mention"
	TypeStatus        = "status"
	TypeReblog        = "reblog"
	TypeFollow        = "follow"
	TypeFollowRequest = "follow_request"
	TypeFavourite     = "favourite"
	TypePoll          = "poll"
	TypeUpdate        = "update"
)

// Account is the subset of an account the notifications carry.
type Account struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Acct        string `json:"acct"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
}

// Status is the subset of a status the notifications carry.
type Status struct {
	ID        string    `json:"id"`
	URI       string    `json:"uri"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
}

// Notification is one entry of the notifications timeline.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Account   Account   `json:"account"`
	Status    *Status   `json:"status,omitempty"`
}

// GetID returns the notification id.
func (n Notification) GetID() string { return n.ID }

// GetCreatedAt returns the notification creation time.
func (n Notification) GetCreatedAt() time.Time { return n.CreatedAt }

// NotificationFilter narrows the notifications request
type NotificationFilter struct {
	Types        []string `url:"types[],omitempty"`
	ExcludeTypes []string `url:"exclude_types[],omitempty"`
	AccountID    string   `url:"account_id,omitempty"`
}

// Notifications returns a fetcher over the notifications of the
// authenticated user. filter may be nil.
func Notifications(c *client.Client, filter *NotificationFilter) paging.Fetcher[Notification] {
	return paging.FetchFunc[Notification](func(ctx context.Context, opts paging.CursorOptions) (*paging.Page[Notification], error) {
		if filter == nil {
			return client.FetchPage[Notification](ctx, c, NotificationsPath, opts, nil)
		}
		return client.FetchPage[Notification](ctx, c, NotificationsPath, opts, filter)
	})
}

package librl

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
)

type (
	// A Client defines all interactions that can be performed on a rolelist server.
	Client interface {
		// ListItems returns all items in display order.
		// An empty category means no filtering.
		ListItems(category string) ([]*Item, error)
		// GetItem returns the item for the given id, comments included.
		GetItem(id string) (*Item, error)
		// CreateItem creates a new item and returns it with its assigned id.
		CreateItem(fields CreateItem) (*Item, error)
		// SetDone sets the done flag of the given item.
		SetDone(id string, done bool) (*Item, error)
		// DeleteItem removes the given item and all its comments.
		DeleteItem(id string) error
		// AddComment appends a comment to the given item and returns the updated item.
		AddComment(id, text string) (*Item, error)
		// DeleteComment removes a comment from the given item and returns the updated item.
		DeleteComment(id, commentID string) (*Item, error)
		// Stream subscribes to the server's event channel.
		// The subscription lives until Close or context cancellation.
		Stream(ctx context.Context) (*Stream, error)
	}

	p      map[string]any
	client struct {
		http     *http.Client
		endpoint string
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) ListItems(category string) ([]*Item, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}

	items := make([]*Item, 0)
	err := c.perform(http.MethodGet, "/api/items", query, nil, &items)
	return items, err
}

func (c *client) GetItem(id string) (*Item, error) {
	var item Item
	err := c.perform(http.MethodGet, path.Join("/api/items", id), nil, nil, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *client) CreateItem(fields CreateItem) (*Item, error) {
	var item Item
	err := c.perform(http.MethodPost, "/api/items", nil, fields, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *client) SetDone(id string, done bool) (*Item, error) {
	var item Item
	err := c.perform(http.MethodPatch, path.Join("/api/items", id), nil, p{"done": done}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *client) DeleteItem(id string) error {
	return c.perform(http.MethodDelete, path.Join("/api/items", id), nil, nil, nil)
}

func (c *client) AddComment(id, text string) (*Item, error) {
	var item Item
	err := c.perform(http.MethodPost, path.Join("/api/items", id, "comments"), nil, p{"text": text}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *client) DeleteComment(id, commentID string) (*Item, error) {
	var item Item
	err := c.perform(http.MethodDelete, path.Join("/api/items", id, "comments", commentID), nil, nil, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// perform builds the request, performs it and processes the response into out.
func (c *client) perform(method, endpoint string, query url.Values, payload, out any) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, endpoint)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	//
	// Build request
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "could not serialize payload")
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseAPIError(res.Body, res.StatusCode)
	}

	//
	// Process response
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(out), "could not parse response")
}

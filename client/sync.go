package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/studylist/studylist-sync/internal/model"
)

// FetchUser returns the full aggregate for uid. If the account does not
// exist yet it is provisioned with the client's profile and a default topic,
// then fetched again. A concurrent provision by another device is tolerated:
// the create conflict is swallowed and the fetch retried.
func (c *Client) FetchUser(ctx context.Context, uid string) (*model.User, error) {
	u, err := c.getUser(ctx, uid)
	if IsNotFound(err) {
		provisionsTotal.Inc()
		if _, cerr := c.CreateUser(ctx, uid); cerr != nil && !IsConflict(cerr) {
			return nil, cerr
		}
		u, err = c.getUser(ctx, uid)
	}
	if err != nil {
		return nil, err
	}
	c.refreshMirror(u.Topics)
	return u, nil
}

func (c *Client) getUser(ctx context.Context, uid string) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(uid), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser registers the account for uid using the client's profile.
// Duplicate registration surfaces as a conflict error.
func (c *Client) CreateUser(ctx context.Context, uid string) (*model.User, error) {
	body := map[string]interface{}{
		"firebaseUID": uid,
		"email":       c.profile.Email,
		"name":        c.profile.Name,
	}
	var u model.User
	if err := c.do(ctx, http.MethodPost, "/api/users", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// AddMaterial appends a clipped material under the topic named or identified
// by locator and returns the user's full topic list. A topic name that does
// not exist yet is created on the fly; a topic id that does not exist fails
// with a not-found error.
func (c *Client) AddMaterial(ctx context.Context, uid, locator string, in MaterialInput) ([]model.Topic, error) {
	path := "/api/users/" + url.PathEscape(uid) + "/topics/" + url.PathEscape(locator) + "/materials"
	var topics []model.Topic
	if err := c.do(ctx, http.MethodPost, path, in, &topics); err != nil {
		return nil, err
	}
	c.refreshMirror(topics)
	return topics, nil
}

// AddTopic creates an empty topic and returns the full topic list.
func (c *Client) AddTopic(ctx context.Context, uid, name string) ([]model.Topic, error) {
	path := "/api/users/" + url.PathEscape(uid) + "/topics"
	var topics []model.Topic
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"name": name}, &topics); err != nil {
		return nil, err
	}
	c.refreshMirror(topics)
	return topics, nil
}

// RenameTopic renames the topic with the given id and returns the full
// topic list.
func (c *Client) RenameTopic(ctx context.Context, uid, topicID, name string) ([]model.Topic, error) {
	path := "/api/users/" + url.PathEscape(uid) + "/topics/" + url.PathEscape(topicID)
	var topics []model.Topic
	if err := c.do(ctx, http.MethodPut, path, map[string]string{"name": name}, &topics); err != nil {
		return nil, err
	}
	c.refreshMirror(topics)
	return topics, nil
}

// UpdateProfile changes the display name and bio. Empty fields are left
// unchanged server side.
func (c *Client) UpdateProfile(ctx context.Context, uid, name, bio string) (*model.User, error) {
	path := "/api/users/" + url.PathEscape(uid) + "/profile"
	var u model.User
	if err := c.do(ctx, http.MethodPut, path, map[string]string{"name": name, "bio": bio}, &u); err != nil {
		return nil, err
	}
	c.refreshMirror(u.Topics)
	return &u, nil
}

// refreshMirror replaces the mirrored topic tree. Server responses are
// authoritative; mirror write failures never fail the API call.
func (c *Client) refreshMirror(topics []model.Topic) {
	if c.mirror == nil || topics == nil {
		return
	}
	_ = c.mirror.ReplaceTopics(topics)
}

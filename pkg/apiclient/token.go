package apiclient

import (
	"errors"
	"fmt"

	"github.com/milan604/restbase/pkg/tokenstore"
)

// GetToken reads the token from the store. ok is false when no non-empty
// token is stored or the store cannot be read.
func (c *Client) GetToken() (token string, ok bool) {
	token, err := c.store.Get(c.cfg.TokenStorageKey)
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNotFound) {
			c.log.WarnF("failed to read token %q: %v", c.cfg.TokenStorageKey, err)
		}
		return "", false
	}
	return token, token != ""
}

// SetToken stores token, replacing any previous one.
func (c *Client) SetToken(token string) error {
	if err := c.store.Set(c.cfg.TokenStorageKey, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// RemoveToken deletes the stored token.
func (c *Client) RemoveToken() error {
	if err := c.store.Remove(c.cfg.TokenStorageKey); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

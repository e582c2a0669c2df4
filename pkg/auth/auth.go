// Package auth provides the credential sources the channel stamps onto
// outgoing calls.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoToken is returned when a source has no token to offer.
var ErrNoToken = errors.New("no token available")

// TokenSource yields the bearer token for the next call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken always returns the same token.
type StaticToken string

// Token returns the token, or ErrNoToken when it is empty.
func (s StaticToken) Token(context.Context) (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// FileToken reads a JWT from a file on every call, so a rotated token is
// picked up without reconnecting.
type FileToken struct {
	Path string
}

// Token returns the trimmed file content.
func (f FileToken) Token(context.Context) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	tok := strings.TrimSpace(string(data))
	if tok == "" {
		return "", fmt.Errorf("token file %s: %w", f.Path, ErrNoToken)
	}
	return tok, nil
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

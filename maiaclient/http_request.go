// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package maiaclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNot200Status = errors.New("not 200 status code")
)

// StatusError is a non 200 response. It matches ErrNot200Status, and ErrNotFound for a 404.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http error - Status Code %d - %s", e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNot200Status || (target == ErrNotFound && e.Code == http.StatusNotFound)
}

func (c *Client) httpRequest(method, url string, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "performing request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{resp.StatusCode, strings.TrimSpace(string(body))}
	}
	return body, nil
}

func (c *Client) httpGET(path string) ([]byte, error) {
	return c.httpRequest(http.MethodGet, c.url+path, nil)
}

func (c *Client) send(method, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal payload")
	}
	return c.httpRequest(method, c.url+path, bytes.NewReader(data))
}

// getJSON and postJSON decode a 200 response into a new T.
func getJSON[T any](c *Client, path string) (*T, error) {
	body, err := c.httpGET(path)
	if err != nil {
		return nil, err
	}
	return decode[T](body)
}

func sendJSON[T any](c *Client, method, path string, payload any) (*T, error) {
	body, err := c.send(method, path, payload)
	if err != nil {
		return nil, err
	}
	return decode[T](body)
}

func decode[T any](body []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, errors.Wrapf(err, "unable to unmarshal %T", v)
	}
	return &v, nil
}

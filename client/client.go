// Package client talks to an ldt HTTP server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/pquads"
)

func New(addr string) *Client {
	return &Client{addr: strings.TrimSuffix(addr, "/"), cli: http.DefaultClient}
}

// Client is used for communicating with an ldt server through HTTP.
type Client struct {
	addr string
	cli  *http.Client
}

func (c *Client) SetHTTPClient(cli *http.Client) {
	c.cli = cli
}

func (c *Client) url(s string, q map[string]string) string {
	addr := c.addr + s
	if len(q) != 0 {
		p := make(url.Values, len(q))
		for k, v := range q {
			if v != "" {
				p.Set(k, v)
			}
		}
		if len(p) != 0 {
			addr += "?" + p.Encode()
		}
	}
	return addr
}

type errRequestFailed struct {
	Status     string
	StatusCode int
	Message    string
}

func (e errRequestFailed) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed: %v: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed: %v", e.Status)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	e, ok := err.(errRequestFailed)
	return ok && e.StatusCode == http.StatusNotFound
}

func requestFailed(resp *http.Response) error {
	e := errRequestFailed{StatusCode: resp.StatusCode, Status: resp.Status}
	var body struct {
		Error string `json:"error"`
	}
	if data, err := ioutil.ReadAll(io.LimitReader(resp.Body, 64*1024)); err == nil {
		if json.Unmarshal(data, &body) == nil {
			e.Message = body.Error
		}
	}
	return e
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, nil), nil)
	if err != nil {
		return nil, err
	}
	return c.cli.Do(req)
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.get(ctx, "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return requestFailed(resp)
	}
	return nil
}

// TemplateCall is the template call the server resolved for a path.
type TemplateCall struct {
	Template  string            `json:"template"`
	Ontology  string            `json:"ontology,omitempty"`
	URI       string            `json:"uri"`
	Base      string            `json:"base"`
	Path      string            `json:"path"`
	Variables map[string]string `json:"variables"`
	Query     string            `json:"query,omitempty"`
	Update    string            `json:"update,omitempty"`
	Priority  float64           `json:"priority"`
}

// TemplateCall resolves the template call of a path on the server. It returns
// an error that satisfies IsNotFound when no template matches.
func (c *Client) TemplateCall(ctx context.Context, path string) (*TemplateCall, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, requestFailed(resp)
	}
	var call TemplateCall
	if err := json.NewDecoder(resp.Body).Decode(&call); err != nil {
		return nil, err
	}
	return &call, nil
}

type funcCloser struct {
	f      func() error
	closed bool
}

func (c *funcCloser) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.f()
}

// InsertData streams quads to the server and returns the INSERT DATA
// operation in SPARQL syntax. If graph is set, all quads are scoped to it.
// A non-empty comment is attached to the operation as rdfs:comment.
func (c *Client) InsertData(ctx context.Context, qr quad.Reader, graph, comment string) (string, error) {
	pr, pw := io.Pipe()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.url("/api/v1/insert-data", map[string]string{
			"graph":   graph,
			"comment": comment,
			"format":  "sparql",
		}), pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", pquads.ContentType)
	type result struct {
		text string
		err  error
	}
	resc := make(chan result, 1)
	go func() {
		defer pr.Close()
		resp, err := c.cli.Do(req)
		if err != nil {
			resc <- result{err: err}
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			resc <- result{err: requestFailed(resp)}
			return
		}
		data, err := ioutil.ReadAll(resp.Body)
		resc <- result{text: string(data), err: err}
	}()
	qw := pquads.NewWriter(pw, &pquads.Options{
		Full:   false,
		Strict: false,
	})
	qw.SetCloser(&funcCloser{f: pw.Close})
	_, err = quad.Copy(qw, qr)
	if cerr := qw.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		pw.CloseWithError(err)
	}
	res := <-resc
	if res.err != nil {
		return "", res.err
	}
	return res.text, err
}

// Copyright 2024 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package provider resolves the template call of an HTTP request and makes it
// available to request handlers.
package provider

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/cayleygraph/ldt/clog"
	"github.com/cayleygraph/ldt/ontology"
)

// OntologyResolver returns the ontology that applies to a request.
type OntologyResolver interface {
	ResolveOntology(r *http.Request) (*ontology.Ontology, error)
}

// OntologyResolverFunc adapts a function to OntologyResolver.
type OntologyResolverFunc func(r *http.Request) (*ontology.Ontology, error)

func (f OntologyResolverFunc) ResolveOntology(r *http.Request) (*ontology.Ontology, error) {
	return f(r)
}

// StaticOntology resolves the same ontology for every request.
func StaticOntology(o *ontology.Ontology) OntologyResolver {
	return OntologyResolverFunc(func(*http.Request) (*ontology.Ontology, error) {
		return o, nil
	})
}

// Matcher matches an absolute request URI relative to a base URI.
type Matcher interface {
	Match(absolutePath, baseURI *url.URL) (*ontology.TemplateCall, error)
}

// Option configures a Provider.
type Option func(p *Provider)

// WithMatcher sets the function that creates a matcher for a resolved ontology.
func WithMatcher(fnc func(o *ontology.Ontology) Matcher) Option {
	return func(p *Provider) {
		p.newMatcher = fnc
	}
}

// WithBaseURI fixes the base URI instead of deriving it from each request.
func WithBaseURI(u *url.URL) Option {
	return func(p *Provider) {
		p.base = u
	}
}

func defaultMatcher(o *ontology.Ontology) Matcher {
	return ontology.NewMatcher(o)
}

// Provider resolves template calls. It keeps no state between requests and is
// safe for concurrent use.
type Provider struct {
	resolver   OntologyResolver
	newMatcher func(o *ontology.Ontology) Matcher
	base       *url.URL
}

// New creates a provider that resolves the ontology of each request with resolver.
func New(resolver OntologyResolver, opts ...Option) *Provider {
	p := &Provider{resolver: resolver, newMatcher: defaultMatcher}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TemplateCall returns the template call of a request, or nil if no template
// matches its URI. The value is the one returned by the matcher.
func (p *Provider) TemplateCall(r *http.Request) (*ontology.TemplateCall, error) {
	if r == nil {
		return nil, errors.New("template call: request cannot be nil")
	}
	start := time.Now()
	call, err := p.templateCall(r)
	observe(call, err, time.Since(start))
	return call, err
}

func (p *Provider) templateCall(r *http.Request) (*ontology.TemplateCall, error) {
	if p.resolver == nil {
		return nil, errors.New("template call: no ontology resolver")
	}
	o, err := p.resolver.ResolveOntology(r)
	if err != nil {
		return nil, err
	}
	abs := AbsolutePath(r)
	base := p.base
	if base == nil {
		base = BaseURI(r)
	}
	return p.newMatcher(o).Match(abs, base)
}

// AbsolutePath returns the absolute URI of a request without query.
func AbsolutePath(r *http.Request) *url.URL {
	return &url.URL{
		Scheme:  scheme(r),
		Host:    host(r),
		Path:    r.URL.Path,
		RawPath: r.URL.RawPath,
	}
}

// BaseURI returns the root URI of the server that received a request.
func BaseURI(r *http.Request) *url.URL {
	return &url.URL{Scheme: scheme(r), Host: host(r), Path: "/"}
}

func scheme(r *http.Request) string {
	if s := r.Header.Get("X-Forwarded-Proto"); s != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(s, ",")[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	if r.URL.Scheme != "" {
		return r.URL.Scheme
	}
	return "http"
}

func host(r *http.Request) string {
	if h := r.Header.Get("X-Forwarded-Host"); h != "" {
		return strings.TrimSpace(strings.Split(h, ",")[0])
	}
	if r.Host != "" {
		return r.Host
	}
	return r.URL.Host
}

type ctxKey struct{}

// NewContext returns a context that carries a template call. A nil call is not stored.
func NewContext(ctx context.Context, call *ontology.TemplateCall) context.Context {
	if call == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, call)
}

// FromContext returns the template call stored in ctx.
func FromContext(ctx context.Context) (*ontology.TemplateCall, bool) {
	call, ok := ctx.Value(ctxKey{}).(*ontology.TemplateCall)
	return call, ok
}

// ErrorFunc writes the response for a request whose template call could not
// be resolved.
type ErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

func defaultError(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// Handler resolves the template call once per request and passes it to next
// in the request context.
func (p *Provider) Handler(next http.Handler, onError ...ErrorFunc) http.Handler {
	fail := errorFunc(onError)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call, err := p.TemplateCall(r)
		if err != nil {
			clog.Errorf("cannot resolve template call for %s: %v", r.URL.Path, err)
			fail(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), call)))
	})
}

// Handle is the httprouter version of Handler.
func (p *Provider) Handle(h httprouter.Handle, onError ...ErrorFunc) httprouter.Handle {
	fail := errorFunc(onError)
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		call, err := p.TemplateCall(r)
		if err != nil {
			clog.Errorf("cannot resolve template call for %s: %v", r.URL.Path, err)
			fail(w, r, err)
			return
		}
		h(w, r.WithContext(NewContext(r.Context(), call)), params)
	}
}

func errorFunc(fncs []ErrorFunc) ErrorFunc {
	if len(fncs) != 0 && fncs[0] != nil {
		return fncs[0]
	}
	return defaultError
}

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

// Package ldthttp serves template calls and INSERT DATA conversion over HTTP.
package ldthttp

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cayleygraph/ldt/provider"
)

const apiPrefix = "/api/v1"

type Config struct {
	ReadOnly bool
	Timeout  time.Duration
}

// API serves the /api/v1 routes.
type API struct {
	config  *Config
	handler http.Handler
}

// NewAPI creates the API handler.
func NewAPI(cfg *Config) *API {
	if cfg == nil {
		cfg = &Config{}
	}
	r := httprouter.New()
	api := &API{config: cfg, handler: r}
	api.registerOn(r)
	return api
}

func toHandle(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		handler(w, r)
	}
}

func (api *API) registerOn(r *httprouter.Router) {
	r.POST(apiPrefix+"/insert-data", toHandle(readOnly(api.config.ReadOnly, api.ServeInsertData)))
	r.GET(apiPrefix+"/formats", toHandle(ServeFormats))
	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.handler.ServeHTTP(w, r)
}

// SetupRoutes registers health, metrics, the API and the template call
// handler on mux. Paths that are not routed otherwise are resolved through p.
func SetupRoutes(mux *http.ServeMux, p *provider.Provider, cfg *Config) {
	if cfg == nil {
		cfg = &Config{}
	}
	wrap := func(h http.Handler) http.Handler {
		h = CORS(LogRequest(h))
		if cfg.Timeout > 0 {
			h = http.TimeoutHandler(h, cfg.Timeout, `{"error": "request timed out"}`)
		}
		return h
	}
	mux.HandleFunc("/health", HandleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/api/", wrap(NewAPI(cfg)))
	mux.Handle("/", wrap(p.Handler(http.HandlerFunc(ServeTemplateCall), templateCallError)))
}

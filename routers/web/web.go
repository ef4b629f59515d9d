// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/Algomation-AI/vitebridge/modules/log"
	"github.com/Algomation-AI/vitebridge/modules/setting"
	"github.com/Algomation-AI/vitebridge/modules/vite"
	"github.com/Algomation-AI/vitebridge/routers/web/assets"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes returns the HTTP routes for v.
func Routes(v *vite.Vite) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer, accessLogger)

	h := assets.NewHandler(v)
	r.Route("/-/vite", func(r chi.Router) {
		r.Get("/tags", h.Tags)
		r.Get("/manifest", h.Manifest)
	})
	r.Handle("/metrics", promhttp.Handler())

	if prefix, ok := assetsRoutePrefix(v.AssetsURL()); ok {
		r.Group(func(r chi.Router) {
			if len(setting.Server.CORSAllowedOrigins) > 0 {
				r.Use(cors.Handler(cors.Options{
					AllowedOrigins: setting.Server.CORSAllowedOrigins,
					AllowedMethods: []string{http.MethodGet, http.MethodHead},
					MaxAge:         3600,
				}))
			}
			r.Handle(prefix+"/*", h.Serve(prefix))
		})
	} else {
		log.Info("router: assets are served from %s, not mounting a file server", v.AssetsURL())
	}
	return r
}

// assetsRoutePrefix returns the path the build directory is mounted on. Assets
// hosted on another origin are not served.
func assetsRoutePrefix(assetsURL string) (string, bool) {
	if assetsURL != "" && (!strings.HasPrefix(assetsURL, "/") || strings.HasPrefix(assetsURL, "//")) {
		return "", false
	}
	return assetsURL, true
}

func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug("router: %s %s %d in %v", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package api

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/tomtom215/moviepulse/internal/favorites"
	"github.com/tomtom215/moviepulse/internal/logging"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages renders the server-side HTML. The pages fetch their data from the
// JSON API in the browser; only the favorites page is filled in here.
type Pages struct {
	templates map[string]*template.Template
	favorites favorites.Store
	username  string
}

type pageData struct {
	Title     string
	Page      string
	ID        int
	Favorites []favorites.Favorite
}

var pageNames = []string{"index", "movie", "tv", "favorites"}

// NewPages parses the embedded templates. Each page is layout.tmpl plus its
// own file.
func NewPages(store favorites.Store, username string) (*Pages, error) {
	if username == "" {
		username = "guest"
	}
	p := &Pages{
		templates: make(map[string]*template.Template, len(pageNames)),
		favorites: store,
		username:  username,
	}
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.tmpl", "templates/"+name+".tmpl")
		if err != nil {
			return nil, err
		}
		p.templates[name] = tmpl
	}
	return p, nil
}

// Static serves the embedded JS and CSS under /static/.
func (p *Pages) Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embed path is fixed at compile time
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	data.Page = name
	var buf bytes.Buffer
	if err := p.templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("page", name).Msg("Failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// Index renders the home page.
func (p *Pages) Index(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "index", pageData{Title: "MoviePulse"})
}

// Movie renders the movie detail page.
func (p *Pages) Movie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p.render(w, r, "movie", pageData{Title: "Movie", ID: id})
}

// TV renders the TV detail page.
func (p *Pages) TV(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p.render(w, r, "tv", pageData{Title: "TV Series", ID: id})
}

// Favorites renders the saved titles of the default user.
func (p *Pages) Favorites(w http.ResponseWriter, r *http.Request) {
	favs, err := p.favorites.List(r.Context(), p.username)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to list favorites")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	p.render(w, r, "favorites", pageData{Title: "Favorites", Favorites: favs})
}

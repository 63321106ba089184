// internal/web/server.go
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/madeinfrance/mif-backend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server renders the public site. It owns no data; everything comes off the
// API client, and list pages degrade to empty states when the API is down.
type Server struct {
	api     *APIClient
	site    string
	apiBase string
}

func NewServer(cfg config.WebConfig) *Server {
	return &Server{
		api:     NewAPIClient(cfg),
		site:    strings.TrimRight(cfg.SiteURL, "/"),
		apiBase: strings.TrimRight(cfg.APIBaseURL, "/"),
	}
}

func (s *Server) Router() (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.home)
	r.GET("/recherche", s.search)
	r.GET("/secteurs/:slug", s.sector)
	r.GET("/regions/:slug", s.region)
	r.GET("/marques/:slug", s.brand)
	r.GET("/favoris", s.favorites)
	r.GET("/studio", s.studio)
	r.GET("/sitemap.xml", s.sitemap)

	return r, nil
}

func (s *Server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title":    "Made in France",
		"Featured": s.api.FeaturedBrands(8),
		"Sectors":  s.api.Sectors(),
		"Regions":  s.api.Regions(),
	})
}

func (s *Server) search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	query := c.Query("q")

	brands, meta := s.api.Brands(page, c.Query("secteur"), c.Query("region"), query)

	c.HTML(http.StatusOK, "search.html", gin.H{
		"Title":   "Recherche",
		"Query":   query,
		"Brands":  brands,
		"Meta":    meta,
		"Page":    page,
		"Sectors": s.api.Sectors(),
		"Regions": s.api.Regions(),
	})
}

func (s *Server) sector(c *gin.Context) {
	slug := c.Param("slug")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	var current *Sector
	for _, sector := range s.api.Sectors() {
		if sector.Slug == slug {
			value := sector
			current = &value
			break
		}
	}
	if current == nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Title": "Page introuvable"})
		return
	}

	brands, meta := s.api.Brands(page, slug, "", "")

	c.HTML(http.StatusOK, "sector.html", gin.H{
		"Title":  current.Name,
		"Sector": current,
		"Brands": brands,
		"Meta":   meta,
		"Page":   page,
	})
}

func (s *Server) region(c *gin.Context) {
	slug := c.Param("slug")

	var current *Region
	for _, region := range s.api.Regions() {
		if region.Slug == slug {
			value := region
			current = &value
			break
		}
	}
	if current == nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Title": "Page introuvable"})
		return
	}

	c.HTML(http.StatusOK, "region.html", gin.H{
		"Title":  current.Name,
		"Region": current,
		"Brands": s.api.RegionBrands(slug, 12),
	})
}

func (s *Server) brand(c *gin.Context) {
	slug := c.Param("slug")

	brand, err := s.api.Brand(slug)
	if err != nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Title": "Marque introuvable"})
		return
	}

	c.HTML(http.StatusOK, "brand.html", gin.H{
		"Title":    brand.Name,
		"Brand":    brand,
		"Products": s.api.BrandProducts(slug),
	})
}

// The favorites and studio pages render in the browser: the session token
// lives in browser storage, so the server ships the markup and the embedded
// script talks to the API with the visitor's own credentials.
func (s *Server) favorites(c *gin.Context) {
	c.HTML(http.StatusOK, "favorites.html", gin.H{
		"Title":   "Mes favoris",
		"APIBase": s.apiBase,
	})
}

func (s *Server) studio(c *gin.Context) {
	c.HTML(http.StatusOK, "studio.html", gin.H{
		"Title":   "Espace marque",
		"APIBase": s.apiBase,
	})
}

func (s *Server) sitemap(c *gin.Context) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	writeURL := func(path, lastmod string) {
		b.WriteString("  <url><loc>")
		b.WriteString(s.site + path)
		b.WriteString("</loc>")
		if lastmod != "" {
			b.WriteString("<lastmod>" + lastmod + "</lastmod>")
		}
		b.WriteString("</url>\n")
	}

	writeURL("/", "")
	writeURL("/recherche", "")
	for _, sector := range s.api.Sectors() {
		writeURL("/secteurs/"+sector.Slug, "")
	}
	for _, region := range s.api.Regions() {
		writeURL("/regions/"+region.Slug, "")
	}
	for _, brand := range s.api.AllBrandSlugs() {
		lastmod := ""
		if len(brand.UpdatedAt) >= 10 {
			lastmod = brand.UpdatedAt[:10]
		}
		writeURL("/marques/"+brand.Slug, lastmod)
	}

	b.WriteString("</urlset>\n")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(b.String()))
}

// Package routes maps site pages to URL paths and back.
package routes

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type Page string

const (
	PageHome    Page = "home"
	PageAbout   Page = "about"
	PageCourses Page = "courses"
	PageCourse  Page = "course"
	PageBlog    Page = "blog"
	PagePost    Page = "post"
	PageContact Page = "contact"
	PageEnroll  Page = "enroll"
	PageAdmin   Page = "admin"
)

var (
	ErrUnknownPath = errors.New("unknown path")
	ErrMissingID   = errors.New("route needs an id")
)

// Route identifies a page and, for detail pages, the entity shown.
type Route struct {
	Page Page   `json:"page"`
	ID   string `json:"id,omitempty"`
}

// Path returns the URL path for r. Pages that take no id ignore r.ID, except
// enroll where the id is an optional course. Course and post pages need an id.
func Path(r Route) (string, error) {
	id := url.PathEscape(r.ID)
	switch r.Page {
	case PageHome:
		return "/", nil
	case PageAbout, PageCourses, PageBlog, PageContact, PageAdmin:
		return "/" + string(r.Page), nil
	case PageCourse:
		if r.ID == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingID, r.Page)
		}
		return "/course/" + id, nil
	case PagePost:
		if r.ID == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingID, r.Page)
		}
		return "/blog/" + id, nil
	case PageEnroll:
		if r.ID == "" {
			return "/enroll", nil
		}
		return "/enroll/" + id, nil
	}
	return "", fmt.Errorf("unknown page %q", r.Page)
}

// Parse resolves a URL path to its Route.
func Parse(path string) (Route, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return Route{Page: PageHome}, nil
	}
	first, rest, hasRest := strings.Cut(trimmed, "/")
	id, err := url.PathUnescape(rest)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}

	switch Page(first) {
	case PageAbout, PageCourses, PageContact, PageAdmin:
		if !hasRest {
			return Route{Page: Page(first)}, nil
		}
	case PageBlog:
		if !hasRest {
			return Route{Page: PageBlog}, nil
		}
		if id != "" && !strings.Contains(rest, "/") {
			return Route{Page: PagePost, ID: id}, nil
		}
	case PageCourse:
		if id != "" && !strings.Contains(rest, "/") {
			return Route{Page: PageCourse, ID: id}, nil
		}
	case PageEnroll:
		if !hasRest {
			return Route{Page: PageEnroll}, nil
		}
		if id != "" && !strings.Contains(rest, "/") {
			return Route{Page: PageEnroll, ID: id}, nil
		}
	}
	return Route{}, fmt.Errorf("%w: %s", ErrUnknownPath, path)
}

package ui

import (
	"net/url"
	"strings"
)

const (
	ListPath   = "/"
	editPrefix = "/Todo/Edit/"
)

type RouteKind int

const (
	RouteList RouteKind = iota
	RouteEdit
)

type Route struct {
	Kind RouteKind
	ID   string
}

// Path renders the canonical path for r.
func (r Route) Path() string {
	if r.Kind == RouteEdit {
		return EditPath(r.ID)
	}
	return ListPath
}

func EditPath(id string) string {
	return editPrefix + url.PathEscape(id)
}

// ParseRoute maps a path to a route. Anything unknown falls back to the list.
func ParseRoute(path string) Route {
	rest, ok := strings.CutPrefix(path, editPrefix)
	if !ok {
		return Route{Kind: RouteList}
	}
	rest = strings.TrimSuffix(rest, "/")
	id, err := url.PathUnescape(rest)
	if err != nil || id == "" || strings.Contains(rest, "/") {
		return Route{Kind: RouteList}
	}
	return Route{Kind: RouteEdit, ID: id}
}

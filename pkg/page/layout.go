package page

import (
	"path"
	"strings"
)

// Tab is one entry of a layout's tab bar. Route is a single path segment
// relative to the layout base.
type Tab struct {
	Name  string `json:"name"`
	Route string `json:"route"`
}

// TabLink is a resolved tab ready for rendering.
type TabLink struct {
	Name   string `json:"name"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// Layout is an admin page frame: a heading, tab navigation below it and the
// page body.
type Layout struct {
	Title string `json:"title"`
	// Base prefixes every tab route ("/admin/acme/spring-open").
	Base string `json:"base"`
	Tabs []Tab  `json:"tabs"`
	// Active is the index of the selected tab, -1 when none matches.
	Active int `json:"active"`
}

// NewLayout returns a layout with no active tab.
func NewLayout(title, base string, tabs ...Tab) Layout {
	return Layout{
		Title:  strings.TrimSpace(title),
		Base:   strings.TrimRight(strings.TrimSpace(base), "/"),
		Tabs:   append([]Tab(nil), tabs...),
		Active: -1,
	}
}

// Resolve returns a copy of l whose active tab is the first tab whose route
// appears as a segment of requestPath.
func (l Layout) Resolve(requestPath string) Layout {
	l.Active = ActiveTab(l.Tabs, requestPath)
	return l
}

// ActiveTab finds the index of the first tab whose route is one of the
// segments of requestPath, or -1.
func ActiveTab(tabs []Tab, requestPath string) int {
	segments := strings.Split(strings.Trim(path.Clean("/"+requestPath), "/"), "/")
	for idx, tab := range tabs {
		route := strings.Trim(tab.Route, "/")
		if route == "" {
			continue
		}
		for _, segment := range segments {
			if segment == route {
				return idx
			}
		}
	}
	return -1
}

// Href joins the layout base with route.
func (l Layout) Href(route string) string {
	route = strings.Trim(route, "/")
	if l.Base == "" {
		return "/" + route
	}
	return l.Base + "/" + route
}

// Links resolves every tab into a link.
func (l Layout) Links() []TabLink {
	links := make([]TabLink, 0, len(l.Tabs))
	for idx, tab := range l.Tabs {
		links = append(links, TabLink{
			Name:   tab.Name,
			Href:   l.Href(tab.Route),
			Active: idx == l.Active,
		})
	}
	return links
}

// Current returns the active tab.
func (l Layout) Current() (Tab, bool) {
	if l.Active < 0 || l.Active >= len(l.Tabs) {
		return Tab{}, false
	}
	return l.Tabs[l.Active], true
}

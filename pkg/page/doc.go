// Package page describes the chrome admin screens render around tables and
// forms: a layout with a heading and tab navigation, and modal dialogs that
// host a form. Values here are plain data; pkg/renderers/vanilla turns them
// into HTML.
package page

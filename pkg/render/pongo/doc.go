// Package pongo implements the render.Renderer contract on top of the pongo2
// template engine. It owns template lookup and caching, source/output
// transcoding and the default filter set; template syntax and evaluation stay
// entirely pongo2's concern.
package pongo

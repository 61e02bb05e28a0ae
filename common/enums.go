// Package common keeps enumerations shared by configuration, generator and
// command line.
package common

//go:generate go run github.com/abice/go-enum@v0.9.2 --marshal --names

// Format of resolved configuration output.
// ENUM(yaml, json)
type ResolveFormat int

// Strategy for dark: variant.
// ENUM(media, class)
type DarkMode int


package ecdocs

import "embed"

// EmbeddedAssets contains static assets shipped with the theme: theme.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

package autolink

import (
	"errors"

	"github.com/riverfjs/autolink-go/internal/index"
	"github.com/riverfjs/autolink-go/internal/parser"
	"github.com/riverfjs/autolink-go/internal/renderer"
)

var (
	// ErrInvalidAlias is returned when an entity has an empty alias.
	ErrInvalidAlias = index.ErrInvalidAlias
	// ErrMalformedInput is logged when a line cannot be parsed.
	ErrMalformedInput = parser.ErrMalformedInput
	// ErrRenderFailure is logged when a rewritten line cannot be serialised.
	ErrRenderFailure = renderer.ErrRenderFailure
	// ErrIndexNotBuilt is returned by ProcessLines before the first Refresh.
	ErrIndexNotBuilt = errors.New("alias index not built")
)

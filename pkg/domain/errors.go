package domain

import "errors"

// ErrDocumentNotFound is returned when a document path cannot be found in the store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrDocumentExists is returned when a create collides with an existing path.
var ErrDocumentExists = errors.New("document already exists")

// ErrRendererNotFound is returned when no renderer is registered for a MIME type.
var ErrRendererNotFound = errors.New("no renderer registered for mime type")

package model

import "errors"

// ErrNotFound signals that a record does not exist for the requesting user.
// A row owned by somebody else is reported exactly the same way, so a
// caller cannot tell foreign records apart from missing ones.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate signals a unique key collision, e.g. a taken username.
var ErrDuplicate = errors.New("record already exists")

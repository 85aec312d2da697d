package handlers

import (
	"errors"
)

var ErrUnexpectedEventType = errors.New("unexpected event type")

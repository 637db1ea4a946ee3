package app

import (
	"time"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns a domain.Clock backed by time.Now.
func SystemClock() domain.Clock { return systemClock{} }

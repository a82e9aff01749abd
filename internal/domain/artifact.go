package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewImageFilename returns a unique image filename. The timestamp plus random
// suffix guarantees no collision across concurrent pipeline runs.
func NewImageFilename() string {
	return fmt.Sprintf("quote_image_%s_%s.jpeg", time.Now().Format("20060102_150405"), uuid.NewString()[:8])
}

// NewVideoFilename returns a unique video filename.
func NewVideoFilename() string {
	return fmt.Sprintf("quote_video_%s_%s.mp4", time.Now().Format("20060102_150405"), uuid.NewString()[:8])
}

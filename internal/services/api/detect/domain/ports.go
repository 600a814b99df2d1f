package domain

import (
	"context"

	"langid/internal/core/langid"
)

// ServicePort is the detect module's exported port
type ServicePort interface {
	Detect(ctx context.Context, in DetectInput) (langid.Result, error)
	DetectBatch(ctx context.Context, in BatchInput) (BatchOutput, error)
	Languages(ctx context.Context) (LanguagesOutput, error)
}

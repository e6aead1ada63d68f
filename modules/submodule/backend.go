// Package submodule holds the image-generation provider backends.
package submodule

import (
	"fmt"

	"stylo-server/modules/common/config"
	generateimage "stylo-server/modules/generate-image"
	"stylo-server/modules/submodule/replicate"
	"stylo-server/modules/submodule/runware"
)

// NewImageBackend returns the backend selected by IMAGE_PROVIDER.
func NewImageBackend(cfg *config.Config) (generateimage.Backend, error) {
	switch cfg.ImageProvider {
	case config.ImageProviderRunware:
		return runware.NewService(cfg.RunwareAPIURL, cfg.RunwareAPIKey), nil
	case config.ImageProviderReplicate:
		return replicate.NewService(cfg.ReplicateAPIToken)
	default:
		return nil, fmt.Errorf("unknown image provider %q", cfg.ImageProvider)
	}
}

// NewImageService wires the orchestrator for the configured provider.
func NewImageService(cfg *config.Config) (*generateimage.Service, error) {
	backend, err := NewImageBackend(cfg)
	if err != nil {
		return nil, err
	}
	return generateimage.NewService(backend, generateimage.Config{
		Credential:    cfg.ImageCredential(),
		ModelOverride: cfg.ImageModelOverride(),
		CallTimeout:   cfg.ImageCallTimeout,
		BaseDelay:     cfg.ImageRetryBaseDelay,
	}), nil
}

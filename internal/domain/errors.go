package domain

import "errors"

// Stage errors. Each pipeline stage tags its failures with one of these so the
// orchestrator and the HTTP layer can tell them apart with errors.Is.
var (
	ErrGenerationFailed      = errors.New("quote generation failed")
	ErrRequestFailed         = errors.New("image generation request failed")
	ErrMalformedResponse     = errors.New("malformed image generation response")
	ErrEmptyResult           = errors.New("image generation returned no images")
	ErrDecodeFailed          = errors.New("image payload decode failed")
	ErrUploadFailed          = errors.New("blob upload failed")
	ErrFetchFailed           = errors.New("blob fetch failed")
	ErrVideoGenerationFailed = errors.New("video generation failed")
	ErrContainerNotReady     = errors.New("publish container not ready")
	ErrPublishFailed         = errors.New("reel publish failed")
)

package voxel

import "errors"

var (
	// ErrUnknownVoxelType is returned when a type has no registered id.
	ErrUnknownVoxelType = errors.New("unknown voxel type")
	// ErrAmbiguousRegistryState is returned when a registration would make
	// two types share one id.
	ErrAmbiguousRegistryState = errors.New("ambiguous registry state")
)

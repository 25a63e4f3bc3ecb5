package config

import "errors"

var (
	ErrInvalidStorageConfigs = errors.New("invalid storage configs")
	ErrInvalidRemoteConfigs  = errors.New("invalid remote configs")
	ErrInvalidServerConfigs  = errors.New("invalid server configs")
)

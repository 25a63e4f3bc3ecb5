package service

import "errors"

var (
	ErrEmptyTaskID    = errors.New("task id is empty")
	ErrEmptyTaskTitle = errors.New("task title is empty")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)

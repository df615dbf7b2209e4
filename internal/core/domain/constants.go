package domain

import "errors"

var (
	ErrModuleNotFound  = errors.New("module not found")
	ErrDuplicateModule = errors.New("module name already registered")
	ErrNotSaved        = errors.New("subscription could not be saved")
)

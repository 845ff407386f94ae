package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidDataset = errors.New("invalid dataset")
	ErrUnknownClass   = errors.New("classifier returned unknown class id")
)

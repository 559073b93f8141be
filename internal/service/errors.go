package service

import (
	"database/sql"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid")
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

package storage

import (
	"chatkeywords/internal/app/ports"
	"fmt"
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

func Open(driver, path string) (ports.KVPort, error) {
	switch driver {
	case DriverFile, "":
		return NewCache(path)
	case DriverSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

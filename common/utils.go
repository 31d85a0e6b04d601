package common

import (
	"os"
)

// FileExist returns true if file exists at path
func FileExist(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil || !os.IsNotExist(err)
}

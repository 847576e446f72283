// backend/src/services/main_test.go
package services

import (
	"os"
	"testing"

	"github.com/username/paisatrack/backend/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

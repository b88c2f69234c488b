package middleware

import (
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/security"
	"github.com/gin-gonic/gin"
)

// DeviceMiddleware resolves the device identity from the X-Device-ID
// header, minting a fresh ULID when the client has none. The assigned
// ID is echoed back so the client can persist it.
func DeviceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader("X-Device-ID")
		if deviceID == "" {
			deviceID = security.GenerateULID()
		}

		c.Set("deviceId", deviceID)
		c.Header("X-Device-ID", deviceID)
		c.Next()
	}
}

// GetDeviceID retrieves the device identity placed by DeviceMiddleware
func GetDeviceID(c *gin.Context) string {
	return c.GetString("deviceId")
}

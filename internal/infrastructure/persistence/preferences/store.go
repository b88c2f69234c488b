// Package preferences provides the per-device preference store: a small
// typed key-value interface with SQL-backed and in-memory implementations.
// Both the consent flag and the serialized preference profile live here.
package preferences

import (
	"fmt"
)

// Store is the key-value contract the preference profile rides on.
// Implementations are best-effort and local to the device's tenant; Get
// returns (nil, nil) for a missing key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// ProfileKey names the serialized preference profile for one device
func ProfileKey(deviceID string) string {
	return fmt.Sprintf("profile:%s", deviceID)
}

// ConsentKey names the consent flag for one device
func ConsentKey(deviceID string) string {
	return fmt.Sprintf("consent:%s", deviceID)
}

package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionReportKey returns the cache key for a session's computed report.
func (r *CacheKeyStruct) SessionReportKey(sessionID string) string {
	return fmt.Sprintf("session:%s:report", sessionID)
}

var CacheKey = NewCacheKeyStruct()

package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding a user's active session JTI.
func (r *CacheKeyStruct) UserSessionKey(userID uuid.UUID) string {
	return fmt.Sprintf("login:%s", userID)
}

// GradeScheduleKey returns the cache key for a grade's session list.
func (r *CacheKeyStruct) GradeScheduleKey(gradeID uuid.UUID) string {
	return fmt.Sprintf("grade:%s:schedule", gradeID)
}

// CompletionQueueKey returns the Redis list lesson-completion markers are
// queued on for the batch worker.
func (r *CacheKeyStruct) CompletionQueueKey() string {
	return "persist_completions_queue"
}

// AttendanceChannel returns the PubSub channel carrying a school's live
// attendance events.
func (r *CacheKeyStruct) AttendanceChannel(schoolID uuid.UUID) string {
	return fmt.Sprintf("school:%s:attendance", schoolID)
}

var CacheKey = NewCacheKeyStruct()

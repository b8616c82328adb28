package services

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
)

const (
	KeyCurrentUser      = "currentUser"
	KeyUsers            = "users"
	KeyCompletedCourses = "completedCourses"
)

// decodeUsers parses the credential mapping. An absent key yields an empty
// map. A value that is not a JSON object also yields an empty map, together
// with an error wrapping common.ErrCorruptValue.
func decodeUsers(raw string, ok bool) (map[string]string, error) {
	users := make(map[string]string)
	if !ok || raw == "" {
		return users, nil
	}
	if err := json.Unmarshal([]byte(raw), &users); err != nil || users == nil {
		return make(map[string]string), fmt.Errorf("%w: %s: %v", common.ErrCorruptValue, KeyUsers, err)
	}
	return users, nil
}

func encodeUsers(users map[string]string) (string, error) {
	b, err := json.Marshal(users)
	if err != nil {
		return "", fmt.Errorf("encode users: %w", err)
	}
	return string(b), nil
}

// decodeIDs parses a JSON array of course ids with the same absent and
// corrupt handling as decodeUsers.
func decodeIDs(key, raw string, ok bool) ([]int, error) {
	if !ok || raw == "" {
		return nil, nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrCorruptValue, key, err)
	}
	return ids, nil
}

func encodeIDs(ids []int) (string, error) {
	if ids == nil {
		ids = []int{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode course ids: %w", err)
	}
	return string(b), nil
}

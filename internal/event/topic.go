package event

import "strings"

// Topic is a hierarchical event type using dot notation.
type Topic string

// Wildcards understood by Matches.
const (
	WildcardSingle = "*"
	WildcardMulti  = "**"
	separator      = "."
)

// Topics published by helixedit.
const (
	TopicDesignChanged  Topic = "design.changed"
	TopicEditRejected   Topic = "edit.rejected"
	TopicSessionChanged Topic = "session.changed"
	TopicHistoryUndone  Topic = "history.undone"
	TopicHistoryRedone  Topic = "history.redone"
	TopicConfigReloaded Topic = "config.reloaded"
	TopicBackupWritten  Topic = "backup.written"
)

func (t Topic) String() string { return string(t) }

// Segments returns the topic split on dots.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), separator)
}

// IsValid reports whether t is non-empty and has no empty segment.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// Matches reports whether t matches pattern.
func (t Topic) Matches(pattern Topic) bool {
	return matchSegments(t.Segments(), pattern.Segments())
}

func matchSegments(topic, pattern []string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case WildcardMulti:
			for i := 0; i <= len(topic); i++ {
				if matchSegments(topic[i:], pattern[1:]) {
					return true
				}
			}
			return false
		case WildcardSingle:
			if len(topic) == 0 {
				return false
			}
		default:
			if len(topic) == 0 || topic[0] != pattern[0] {
				return false
			}
		}
		topic, pattern = topic[1:], pattern[1:]
	}
	return len(topic) == 0
}

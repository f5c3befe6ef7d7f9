package model

import "github.com/google/uuid"

// TopicLocator identifies a topic either by its store-assigned id or by its
// case-sensitive name. The two modes resolve differently: an id that matches
// nothing is an error, while an unknown name means "create the topic".
type TopicLocator struct {
	value string
	byID  bool
}

// LocatorByID locates a topic strictly by its opaque id.
func LocatorByID(id string) TopicLocator { return TopicLocator{value: id, byID: true} }

// LocatorByName locates a topic by exact name, creating it when absent.
func LocatorByName(name string) TopicLocator { return TopicLocator{value: name} }

// ParseTopicLocator classifies a raw path segment. Topic ids are UUIDs
// assigned at creation, so anything that parses as a UUID is treated as an id
// and everything else as a name.
func ParseTopicLocator(s string) TopicLocator {
	if _, err := uuid.Parse(s); err == nil {
		return LocatorByID(s)
	}
	return LocatorByName(s)
}

// ByID reports whether the locator is id-based.
func (l TopicLocator) ByID() bool { return l.byID }

// Value returns the raw id or name.
func (l TopicLocator) Value() string { return l.value }

// Resolve returns the index of the matching topic, or -1 when no topic
// matches.
func (l TopicLocator) Resolve(topics []Topic) int {
	for i := range topics {
		if l.byID {
			if topics[i].ID == l.value {
				return i
			}
		} else if topics[i].Name == l.value {
			return i
		}
	}
	return -1
}

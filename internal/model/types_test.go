package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewTopicHasAllBuckets(t *testing.T) {
	topic := NewTopic("Languages", time.Now())
	for _, typ := range []MaterialType{TypeWebpage, TypeVideo, TypeBook, TypePodcast} {
		b := topic.Categories.Bucket(typ)
		if b == nil || *b == nil {
			t.Fatalf("bucket %s missing", typ)
		}
		if len(*b) != 0 {
			t.Fatalf("bucket %s not empty", typ)
		}
	}
}

func TestTopicMarshalsEmptyBucketsAsArrays(t *testing.T) {
	topic := NewTopic("Languages", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	data, err := json.Marshal(topic)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, key := range []string{`"webpage":[]`, `"video":[]`, `"book":[]`, `"podcast":[]`} {
		if !strings.Contains(s, key) {
			t.Fatalf("marshaled topic missing %s: %s", key, s)
		}
	}
}

func TestNormalizeFillsMissingBuckets(t *testing.T) {
	// Simulates a legacy aggregate where some buckets were stored as null.
	var topic Topic
	if err := json.Unmarshal([]byte(`{"name":"Old","categories":{"webpage":[{"type":"webpage","title":"a","url":"","rating":5,"completed":false,"dateAdded":"2024-01-01T00:00:00Z"}]}}`), &topic); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	topic.Categories.Normalize()
	if topic.Categories.Video == nil || topic.Categories.Book == nil || topic.Categories.Podcast == nil {
		t.Fatal("normalize left nil buckets")
	}
	if len(topic.Categories.Webpage) != 1 {
		t.Fatal("normalize must not touch populated buckets")
	}
}

func TestMaterialTypeValid(t *testing.T) {
	if MaterialType("webpage").Valid() != true {
		t.Fatal("webpage should be valid")
	}
	if MaterialType("article").Valid() {
		t.Fatal("article should be invalid")
	}
}

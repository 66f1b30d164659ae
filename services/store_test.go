package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"MediHub360/httperr"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// memStore stands in for Mongo and Redis in unit tests. It implements just
// enough of the filter language the services actually use: equality, $ne,
// $nin, $in, $lt and $exists, plus dotted field paths and the sparse-unique
// slotKey index that closes the booking race.
type memStore struct {
	collections map[string][]map[string]interface{}
	seq         int
	failInsert  error
}

func newMemStore(t *testing.T) *memStore {
	t.Helper()
	ms := &memStore{collections: map[string][]map[string]interface{}{}}

	origFindDoc := findDoc
	origFindDocs := findDocs
	origInsertDoc := insertDoc
	origUpdateDoc := updateDoc
	origRemoveDoc := removeDoc
	origCountDocs := countDocs
	origFindPage := findPage
	origCachePut := cachePut
	origCacheFetch := cacheFetch
	origCacheDrop := cacheDrop
	origGenerateCode := generateCode
	t.Cleanup(func() {
		findDoc = origFindDoc
		findDocs = origFindDocs
		insertDoc = origInsertDoc
		updateDoc = origUpdateDoc
		removeDoc = origRemoveDoc
		countDocs = origCountDocs
		findPage = origFindPage
		cachePut = origCachePut
		cacheFetch = origCacheFetch
		cacheDrop = origCacheDrop
		generateCode = origGenerateCode
	})

	findDoc = func(ctx context.Context, collection string, filter bson.M) (map[string]interface{}, error) {
		for _, doc := range ms.collections[collection] {
			if matchesFilter(doc, filter) {
				return copyDoc(doc), nil
			}
		}
		return nil, mongo.ErrNoDocuments
	}
	findDocs = func(ctx context.Context, collection string, filter bson.M) ([]interface{}, error) {
		out := []interface{}{}
		for _, doc := range ms.collections[collection] {
			if matchesFilter(doc, filter) {
				out = append(out, copyDoc(doc))
			}
		}
		return out, nil
	}
	insertDoc = func(ctx context.Context, collection string, doc map[string]interface{}) error {
		if ms.failInsert != nil {
			err := ms.failInsert
			ms.failInsert = nil
			return err
		}
		if err := ms.checkSlotIndex(collection, doc, nil); err != nil {
			return err
		}
		ms.collections[collection] = append(ms.collections[collection], copyDoc(doc))
		return nil
	}
	updateDoc = func(ctx context.Context, collection string, filter, update bson.M) (int64, error) {
		for _, doc := range ms.collections[collection] {
			if !matchesFilter(doc, filter) {
				continue
			}
			var set map[string]interface{}
			switch s := update["$set"].(type) {
			case bson.M:
				set = map[string]interface{}(s)
			case map[string]interface{}:
				set = s
			}
			if set != nil {
				if err := ms.checkSlotIndex(collection, set, doc); err != nil {
					return 0, err
				}
			}
			applyUpdate(doc, update)
			return 1, nil
		}
		return 0, nil
	}
	removeDoc = func(ctx context.Context, collection string, filter bson.M) error {
		docs := ms.collections[collection]
		for i, doc := range docs {
			if matchesFilter(doc, filter) {
				ms.collections[collection] = append(docs[:i], docs[i+1:]...)
				return nil
			}
		}
		return nil
	}
	countDocs = func(ctx context.Context, collection string, filter bson.M) (int64, error) {
		var n int64
		for _, doc := range ms.collections[collection] {
			if matchesFilter(doc, filter) {
				n++
			}
		}
		return n, nil
	}
	findPage = func(ctx context.Context, collection string, filter bson.M, sortSpec bson.D, page, limit int64) ([]map[string]interface{}, error) {
		matched := []map[string]interface{}{}
		for _, doc := range ms.collections[collection] {
			if matchesFilter(doc, filter) {
				matched = append(matched, copyDoc(doc))
			}
		}
		sort.SliceStable(matched, func(i, j int) bool {
			a, _ := matched[i]["appointmentDate"].(string)
			b, _ := matched[j]["appointmentDate"].(string)
			return a < b
		})
		skip := (page - 1) * limit
		if skip >= int64(len(matched)) {
			return []map[string]interface{}{}, nil
		}
		matched = matched[skip:]
		if int64(len(matched)) > limit {
			matched = matched[:limit]
		}
		return matched, nil
	}

	// cache disabled: every read goes to the collections
	cachePut = func(ctx context.Context, key string, value interface{}) error { return nil }
	cacheFetch = func(ctx context.Context, key string, out *map[string]interface{}) (bool, error) {
		return false, nil
	}
	cacheDrop = func(ctx context.Context, key string) error { return nil }

	generateCode = func(collection string) (string, error) {
		ms.seq++
		return fmt.Sprintf("%s-%04d", collection, ms.seq), nil
	}
	return ms
}

func (ms *memStore) add(collection string, doc map[string]interface{}) map[string]interface{} {
	stored := copyDoc(doc)
	ms.collections[collection] = append(ms.collections[collection], stored)
	return stored
}

func (ms *memStore) get(t *testing.T, collection, code string) map[string]interface{} {
	t.Helper()
	for _, doc := range ms.collections[collection] {
		if doc["code"] == code {
			return copyDoc(doc)
		}
	}
	t.Fatalf("no document %q in %s", code, collection)
	return nil
}

// checkSlotIndex emulates the sparse unique index on APPOINTMENT.slotKey.
func (ms *memStore) checkSlotIndex(collection string, fields map[string]interface{}, self map[string]interface{}) error {
	if collection != AppointmentCollection {
		return nil
	}
	key, _ := fields["slotKey"].(string)
	if key == "" {
		return nil
	}
	for _, doc := range ms.collections[collection] {
		if self != nil && doc["code"] == self["code"] {
			continue
		}
		if existing, _ := doc["slotKey"].(string); existing == key {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	return nil
}

func copyDoc(doc map[string]interface{}) map[string]interface{} {
	cp := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		cp[k] = v
	}
	return cp
}

func lookupField(doc map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var current interface{} = doc
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func valueIn(list interface{}, v interface{}) bool {
	switch l := list.(type) {
	case []string:
		for _, item := range l {
			if item == v {
				return true
			}
		}
	case []interface{}:
		for _, item := range l {
			if item == v {
				return true
			}
		}
	}
	return false
}

func matchesFilter(doc map[string]interface{}, filter bson.M) bool {
	for key, want := range filter {
		got, exists := lookupField(doc, key)
		ops, isOps := want.(bson.M)
		if !isOps {
			if !exists || got != want {
				return false
			}
			continue
		}
		for op, arg := range ops {
			switch op {
			case "$ne":
				if exists && got == arg {
					return false
				}
			case "$nin":
				if exists && valueIn(arg, got) {
					return false
				}
			case "$in":
				if !exists || !valueIn(arg, got) {
					return false
				}
			case "$lt":
				gs, _ := got.(string)
				as, _ := arg.(string)
				if !exists || gs >= as {
					return false
				}
			case "$exists":
				wantExists, _ := arg.(bool)
				if exists != wantExists {
					return false
				}
			default:
				panic("memStore: unsupported operator " + op)
			}
		}
	}
	return true
}

func applyUpdate(doc map[string]interface{}, update bson.M) {
	if set, ok := update["$set"].(bson.M); ok {
		for k, v := range set {
			setField(doc, k, v)
		}
	}
	if set, ok := update["$set"].(map[string]interface{}); ok {
		for k, v := range set {
			setField(doc, k, v)
		}
	}
	if unset, ok := update["$unset"].(bson.M); ok {
		for k := range unset {
			delete(doc, k)
		}
	}
}

func setField(doc map[string]interface{}, path string, v interface{}) {
	parts := strings.Split(path, ".")
	current := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = v
}

func assertHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %d %s, got nil error", status, code)
	}
	var httpErr *httperr.Error
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected %d %s, got %v", status, code, err)
	}
	if httpErr.Status != status || httpErr.Code != code {
		t.Fatalf("expected %d %s, got %d %s", status, code, httpErr.Status, httpErr.Code)
	}
}

// testContext builds a gin context carrying the session claims the JWT
// middleware would have set.
func testContext(code, roleName string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("code", code)
	c.Set("collection", roleName)
	return c
}

func testContextWithQuery(code, roleName, rawQuery string) *gin.Context {
	c := testContext(code, roleName)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

package mongo

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectdesk/pm-api/internal/core/domain"
)

// objectID parses hex. ok is false for malformed identifiers, which callers
// treat as "no such record".
func objectID(hex string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// converter turns a query-string value into the stored BSON type. ok is false
// when the value cannot equal any stored value.
type converter func(string) (any, bool)

func asString(v string) (any, bool) { return v, true }

func asObjectID(v string) (any, bool) {
	oid, ok := objectID(v)
	return oid, ok
}

func asNumber(v string) (any, bool) {
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}

func asDate(v string) (any, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return nil, false
}

type field struct {
	name    string
	convert converter
}

// fieldMapping translates a filter key (JSON name) to its stored field.
type fieldMapping map[string]field

var clientFields = fieldMapping{
	"id":        {"_id", asObjectID},
	"name":      {"name", asString},
	"email":     {"email", asString},
	"userEmail": {"user_email", asString},
	"phone":     {"phone", asString},
	"company":   {"company", asString},
	"notes":     {"notes", asString},
}

var projectFields = fieldMapping{
	"id":          {"_id", asObjectID},
	"title":       {"title", asString},
	"userEmail":   {"user_email", asString},
	"budget":      {"budget", asNumber},
	"deadline":    {"deadline", asDate},
	"status":      {"status", asString},
	"clientId":    {"client_id", asObjectID},
	"name":        {"name", asString},
	"description": {"description", asString},
}

// toBSON builds an equality filter from f. Keys outside m are ignored; the
// services reject them before reaching storage. matchable is false when a
// value cannot match any stored record (a malformed id, number or date).
func (m fieldMapping) toBSON(f domain.Filter) (filter bson.M, matchable bool) {
	filter = bson.M{}
	for key, value := range f {
		fd, ok := m[key]
		if !ok {
			continue
		}
		v, ok := fd.convert(value)
		if !ok {
			return nil, false
		}
		filter[fd.name] = v
	}
	return filter, true
}

package did

import "strings"

// QueryParam is one `key=value` (or bare `key`) pair from a DID's query
// string, in the order it appeared.
type QueryParam struct {
	Key   string
	Value any // string, or bool(true) for a bare key
}

// Query is the ordered map of a DID's query parameters: string keys to
// either a string value or bool(true) for a bare key.
type Query struct {
	params []QueryParam
}

// Get returns the value for key and whether it was present.
func (q *Query) Get(key string) (any, bool) {
	if q == nil {
		return nil, false
	}
	for _, p := range q.params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Keys returns the parameter keys in encounter order.
func (q *Query) Keys() []string {
	if q == nil {
		return nil
	}
	out := make([]string, len(q.params))
	for i, p := range q.params {
		out[i] = p.Key
	}
	return out
}

// Len reports the number of query parameters.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.params)
}

func parseQuery(raw string) *Query {
	if raw == "" {
		return &Query{}
	}
	q := &Query{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		if idx := strings.IndexByte(pair, '='); idx >= 0 {
			q.params = append(q.params, QueryParam{Key: pair[:idx], Value: pair[idx+1:]})
		} else {
			q.params = append(q.params, QueryParam{Key: pair, Value: true})
		}
	}
	return q
}

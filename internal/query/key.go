package query

import (
	"encoding/json"
	"fmt"
)

// Key identifies one cached fetch: an operation name plus its parameters.
type Key struct {
	op     string
	params string
}

// NewKey builds a key from op and params. Params are canonicalised through
// JSON (map keys sort, struct fields keep declaration order), so equal
// parameter sets always produce equal keys. A nil params means "no params".
func NewKey(op string, params any) Key {
	if params == nil {
		return Key{op: op}
	}
	b, err := json.Marshal(params)
	if err != nil {
		// Unencodable params still need a stable identity.
		return Key{op: op, params: fmt.Sprintf("%#v", params)}
	}
	if s := string(b); s != "null" && s != "{}" {
		return Key{op: op, params: s}
	}
	return Key{op: op}
}

// Op returns the operation part of the key.
func (k Key) Op() string { return k.op }

func (k Key) String() string {
	if k.params == "" {
		return k.op
	}
	return k.op + ":" + k.params
}

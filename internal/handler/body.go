package handler

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/todo"
)

// readObject decodes the request body as a JSON object. An empty body
// counts as {}; a well-formed array has no named members and counts as {}
// too.
func readObject(c *gin.Context) (map[string]json.RawMessage, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, todo.Invalid(msgInvalidJSON)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	if body[0] == '[' {
		if !json.Valid(body) {
			return nil, todo.Invalid(msgInvalidJSON)
		}
		return map[string]json.RawMessage{}, nil
	}

	var fields map[string]json.RawMessage
	if err := binding.JSON.BindBody(body, &fields); err != nil || fields == nil {
		return nil, todo.Invalid(msgInvalidJSON)
	}
	return fields, nil
}

// stringField reads a string member. When nullAsMissing is set a JSON null
// reads as absent; otherwise it is a type error.
func stringField(fields map[string]json.RawMessage, name string, nullAsMissing bool) (string, bool, error) {
	raw, ok := fields[name]
	if !ok {
		return "", false, nil
	}
	if nullAsMissing && isNull(raw) {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, todo.Invalid(msgInvalidJSON)
	}
	return s, true, nil
}

func readPatch(c *gin.Context) (todo.Patch, error) {
	fields, err := readObject(c)
	if err != nil {
		return todo.Patch{}, err
	}

	var p todo.Patch
	if text, ok, err := stringField(fields, "text", false); err != nil {
		return todo.Patch{}, err
	} else if ok {
		p.Text = &text
	}
	if raw, ok := fields["completed"]; ok {
		done, err := truthy(raw)
		if err != nil {
			return todo.Patch{}, todo.Invalid(msgInvalidJSON)
		}
		p.Completed = &done
	}
	return p, nil
}

// truthy coerces any JSON value to a boolean the way browsers do:
// false, 0, NaN, "" and null are false, everything else is true.
func truthy(raw json.RawMessage) (bool, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, err
	}
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case float64:
		return x != 0 && !math.IsNaN(x), nil
	case string:
		return x != "", nil
	default:
		return true, nil
	}
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

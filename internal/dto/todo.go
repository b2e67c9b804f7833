package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ID is an opaque todo identifier. It decodes from either a JSON string or a
// JSON number, so the client also works against stores with numeric keys.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: must be a string or a number")
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type CreateTodoRequest struct {
	Title       string `json:"title" binding:"required,max=120"`
	Description string `json:"description" binding:"required,max=1000"`
}

type UpdateTodoRequest struct {
	ID          ID     `json:"id" binding:"required"`
	Title       string `json:"title" binding:"required,max=120"`
	Description string `json:"description" binding:"required,max=1000"`
}

type TodoResponse struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UnmarshalJSON also accepts "_id" as the identifier key, as document stores
// name it. "id" wins when both are present.
func (r *TodoResponse) UnmarshalJSON(data []byte) error {
	type plain TodoResponse
	var aux struct {
		plain
		AltID ID `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = TodoResponse(aux.plain)
	if r.ID == "" {
		r.ID = aux.AltID
	}
	return nil
}

// TodoEnvelope wraps a single todo: {"todo": {...}}.
type TodoEnvelope struct {
	Todo TodoResponse `json:"todo"`
}

// ListTodosResponse wraps the collection: {"todos": [...]}.
type ListTodosResponse struct {
	Todos []TodoResponse `json:"todos"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

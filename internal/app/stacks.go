package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/tacogips/tmplstore/internal/template/model"
	"github.com/tacogips/tmplstore/internal/template/store"
)

const stacksKey = "stacks"

// SetStacks replaces the installed stack list with the payload at location.
// The payload is an array of stacks or an object holding one under "stacks".
func (w *Workspace) SetStacks(ctx context.Context, location string) ([]model.Stack, error) {
	data, err := w.fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	stacks, err := decodeStacks(data)
	if err != nil {
		return nil, NewDecodeError(fmt.Sprintf("invalid stack payload from %s", location), err)
	}

	st := w.store.Dispatch(store.SetStacks{Stacks: stacks})
	return st.Stacks, nil
}

func decodeStacks(data []byte) ([]model.Stack, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}

	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get(stacksKey)
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("expected an array of stacks or an object with %q", stacksKey)
	}

	stacks := []model.Stack{}
	if err := json.Unmarshal([]byte(list.Raw), &stacks); err != nil {
		return nil, err
	}
	for i, s := range stacks {
		if s.ID == "" {
			return nil, fmt.Errorf("stack %d has no id", i)
		}
	}
	return stacks, nil
}

// RemoveStack removes the stack with id.
func (w *Workspace) RemoveStack(id string) error {
	for _, s := range w.store.State().Stacks {
		if s.ID == id {
			w.store.Dispatch(store.RemoveStack{ID: id})
			return nil
		}
	}
	return NewNotFoundError(fmt.Sprintf("stack not found: %s", id))
}

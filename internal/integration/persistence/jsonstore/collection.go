// Package jsonstore keeps every entity kind in its own JSON file inside a data
// directory: an array of records per kind, and a single settings object.
package jsonstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
)

// collection is one array file of records identified by their "id" field.
type collection[T any] struct {
	store  *Store
	file   string
	decode func([]byte) (T, error)
	encode func(T) ([]byte, error)
	idOf   func(T) uint32
}

// FindAll decodes every record in file order. Records that are not JSON
// objects are skipped.
func (c *collection[T]) FindAll(ctx context.Context) ([]T, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.store.readArray(c.file)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(records))
	for i, raw := range records {
		item, err := c.decode(raw)
		if err != nil {
			slog.DebugContext(ctx, "Skipping malformed record", "file", c.file, "index", i, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// NextID returns the highest stored id plus one, or 0 when the file is empty.
func (c *collection[T]) NextID(ctx context.Context) (uint32, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.store.readArray(c.file)
	if err != nil {
		return 0, err
	}

	var next uint32
	for _, raw := range records {
		if id, ok := recordID(raw); ok && id+1 > next {
			next = id + 1
		}
	}
	return next, nil
}

// Save replaces the record with the same id in place, or appends it.
func (c *collection[T]) Save(ctx context.Context, item T) error {
	return c.SaveAll(ctx, []T{item})
}

// SaveAll upserts several records with a single write.
func (c *collection[T]) SaveAll(_ context.Context, items []T) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.store.readArray(c.file)
	if err != nil {
		return err
	}

	positions := make(map[uint32]int, len(records))
	for i, raw := range records {
		if id, ok := recordID(raw); ok {
			positions[id] = i
		}
	}

	for _, item := range items {
		data, err := c.encode(item)
		if err != nil {
			return err
		}

		id := c.idOf(item)
		if i, ok := positions[id]; ok {
			records[i] = data
			continue
		}
		positions[id] = len(records)
		records = append(records, data)
	}

	return c.store.writeArray(c.file, records)
}

// Delete removes the record with id. Deleting a missing record is not an error.
func (c *collection[T]) Delete(ctx context.Context, id uint32) error {
	return c.DeleteMany(ctx, []uint32{id})
}

// DeleteMany removes every record whose id is listed, with a single write.
func (c *collection[T]) DeleteMany(_ context.Context, ids []uint32) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.store.readArray(c.file)
	if err != nil {
		return err
	}

	remove := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		remove[id] = struct{}{}
	}

	kept := records[:0]
	for _, raw := range records {
		if id, ok := recordID(raw); ok {
			if _, found := remove[id]; found {
				continue
			}
		}
		kept = append(kept, raw)
	}

	if len(kept) == len(records) {
		return nil
	}
	return c.store.writeArray(c.file, kept)
}

// recordID reads the unsigned "id" field of a raw record.
func recordID(raw json.RawMessage) (uint32, bool) {
	var record struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &record); err != nil || record.ID == nil {
		return 0, false
	}
	id, err := strconv.ParseUint(string(record.ID), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

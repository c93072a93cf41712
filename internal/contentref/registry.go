// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contentref resolves generic references to external records.
// A reference is a (type tag, numeric id) pair; the registry maps type
// tags to concrete loader functions supplied by the host application.
package contentref

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownType is returned when a reference names a type tag that no
// loader has been registered for.
var ErrUnknownType = errors.New("unknown external record type")

// Ref identifies an external record by type tag and numeric id.
type Ref struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

// String returns the "type:id" form of the reference.
func (r Ref) String() string {
	return fmt.Sprintf("%s:%d", r.Type, r.ID)
}

// Loader fetches one external record by its numeric id.
type Loader func(ctx context.Context, id int64) (any, error)

// Registry maps external record type tags to loader functions.
// Safe for concurrent use; registration normally happens at startup.
type Registry struct {
	mu      sync.RWMutex
	loaders map[string]Loader
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// Register adds a loader for a type tag, replacing any previous one.
func (r *Registry) Register(typeTag string, loader Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[typeTag] = loader
}

// Known reports whether a loader is registered for the type tag.
func (r *Registry) Known(typeTag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.loaders[typeTag]
	return ok
}

// Types returns the registered type tags. Order is unspecified.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.loaders))
	for t := range r.loaders {
		types = append(types, t)
	}
	return types
}

// StubLoader returns a Loader that acknowledges a reference without
// fetching anything. Hosts that only need type validation for relation
// writes can register these; real loaders replace them at startup.
func StubLoader(typeTag string) Loader {
	return func(_ context.Context, id int64) (any, error) {
		return Ref{Type: typeTag, ID: id}, nil
	}
}

// Resolve loads the external record a reference points at.
// Returns ErrUnknownType when no loader is registered for the tag.
func (r *Registry) Resolve(ctx context.Context, ref Ref) (any, error) {
	r.mu.RLock()
	loader, ok := r.loaders[ref.Type]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("resolve %s: %w", ref, ErrUnknownType)
	}
	return loader(ctx, ref.ID)
}

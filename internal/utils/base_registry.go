package utils

import (
	"fmt"
	"sync"
)

// RegistryValidator is a function that validates a key-value pair before registration
type RegistryValidator[K comparable, V any] func(key K, value V, existing map[K]V) error

// BaseRegistry is a generic, thread-safe registry that remembers insertion
// order, so listing it is deterministic across runs.
type BaseRegistry[K comparable, V any] struct {
	mu            sync.RWMutex
	items         map[K]V
	order         []K
	validator     RegistryValidator[K, V]
	registryName  string
	keyDescriptor string // e.g. "extension point", "dialect"
}

// NewBaseRegistry creates a new base registry with the specified configuration
func NewBaseRegistry[K comparable, V any](registryName, keyDesc string) *BaseRegistry[K, V] {
	return &BaseRegistry[K, V]{
		items:         make(map[K]V),
		registryName:  registryName,
		keyDescriptor: keyDesc,
	}
}

// SetValidator sets the validation function for this registry
func (r *BaseRegistry[K, V]) SetValidator(validator RegistryValidator[K, V]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validator = validator
}

// Register adds an item to the registry with validation
func (r *BaseRegistry[K, V]) Register(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.validator != nil {
		if err := r.validator(key, value, r.items); err != nil {
			return fmt.Errorf("%s registry: %w", r.registryName, err)
		}
	}
	r.put(key, value)
	return nil
}

// Upsert replaces the value under key with fn(current, exists), bypassing
// the validator. It is how list-valued registries append.
func (r *BaseRegistry[K, V]) Upsert(key K, fn func(current V, exists bool) V) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.items[key]
	r.put(key, fn(current, exists))
}

func (r *BaseRegistry[K, V]) put(key K, value V) {
	if _, exists := r.items[key]; !exists {
		r.order = append(r.order, key)
	}
	r.items[key] = value
}

// Get retrieves an item from the registry
func (r *BaseRegistry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// GetOrError retrieves an item or returns an error if not found
func (r *BaseRegistry[K, V]) GetOrError(key K) (V, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	if !exists {
		var zero V
		return zero, fmt.Errorf("%s '%v' is not registered", r.keyDescriptor, key)
	}
	return value, nil
}

// Has checks if a key exists in the registry
func (r *BaseRegistry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[key]
	return exists
}

// List returns all keys in insertion order
func (r *BaseRegistry[K, V]) List() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}

// Size returns the number of items in the registry
func (r *BaseRegistry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// Clear removes all items from the registry
func (r *BaseRegistry[K, V]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[K]V)
	r.order = nil
}

// Common validators for reuse across different registry types

// NotEmptyKeyValidator validates that a string key is not empty
func NotEmptyKeyValidator[V any](keyDesc string) RegistryValidator[string, V] {
	return func(key string, value V, existing map[string]V) error {
		if key == "" {
			return fmt.Errorf("%s cannot be empty", keyDesc)
		}
		return nil
	}
}

// NoDuplicateValidator validates that a key doesn't already exist
func NoDuplicateValidator[K comparable, V any](keyDesc string) RegistryValidator[K, V] {
	return func(key K, value V, existing map[K]V) error {
		if _, exists := existing[key]; exists {
			return fmt.Errorf("%s '%v' is already registered", keyDesc, key)
		}
		return nil
	}
}

// ChainValidators combines multiple validators into one
func ChainValidators[K comparable, V any](validators ...RegistryValidator[K, V]) RegistryValidator[K, V] {
	return func(key K, value V, existing map[K]V) error {
		for _, validator := range validators {
			if validator != nil {
				if err := validator(key, value, existing); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lru implements a size-bounded least recently used cache safe for
// concurrent use.
package lru

import (
	"container/list"
	"sync"
)

// Cache implements an LRU cache keyed by strings.
type Cache struct {
	mu       sync.Mutex
	cache    map[string]*list.Element
	priority *list.List
	maxSize  int
}

type kv struct {
	key   string
	value interface{}
}

// New creates a cache that holds at most size entries. A size below one is
// treated as one.
func New(size int) *Cache {
	if size < 1 {
		size = 1
	}
	return &Cache{
		maxSize:  size,
		priority: list.New(),
		cache:    make(map[string]*list.Element),
	}
}

// Put stores a value, replacing the previous value of the key and evicting the
// least recently used entry when the cache is full.
func (lru *Cache) Put(key string, value interface{}) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	if e, ok := lru.cache[key]; ok {
		e.Value = kv{key: key, value: value}
		lru.priority.MoveToFront(e)
		return
	}
	if len(lru.cache) >= lru.maxSize {
		last := lru.priority.Remove(lru.priority.Back())
		delete(lru.cache, last.(kv).key)
	}
	lru.cache[key] = lru.priority.PushFront(kv{key: key, value: value})
}

// Get returns the value of a key and marks it as recently used.
func (lru *Cache) Get(key string) (interface{}, bool) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	if e, ok := lru.cache[key]; ok {
		lru.priority.MoveToFront(e)
		return e.Value.(kv).value, true
	}
	return nil, false
}

// GetOrCreate returns the cached value of a key, calling fn to create it on a
// miss. Errors from fn are returned and nothing is cached.
func (lru *Cache) GetOrCreate(key string, fn func() (interface{}, error)) (interface{}, error) {
	if v, ok := lru.Get(key); ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		return nil, err
	}
	lru.Put(key, v)
	return v, nil
}

// Del removes a key from the cache.
func (lru *Cache) Del(key string) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	e := lru.cache[key]
	if e == nil {
		return
	}
	delete(lru.cache, key)
	lru.priority.Remove(e)
}

// Len returns the number of cached entries.
func (lru *Cache) Len() int {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	return len(lru.cache)
}

/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/masonvector/claim-import-service/internal/system/log"
)

type CacheItem struct {
	Value      interface{}
	Expiration time.Time
}

// Cache is an in-process key/value map whose entries disappear once their expiration passes.
type Cache struct {
	items map[string]CacheItem
	mutex sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

// NewCache creates a new cache with a TTL (time-to-live)
func NewCache(defaultTTL time.Duration) *Cache {
	return NewCacheWithClock(defaultTTL, time.Now)
}

// NewCacheWithClock creates a cache that reads the current time from now.
func NewCacheWithClock(defaultTTL time.Duration, now func() time.Time) *Cache {
	return &Cache{
		items: make(map[string]CacheItem),
		ttl:   defaultTTL,
		now:   now,
	}
}

// Set adds an item to the cache using the default TTL
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL adds an item to the cache that expires after ttl.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {

	log.GetLogger().Debug(fmt.Sprint("Setting cache for key: ", key))
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = CacheItem{
		Value:      value,
		Expiration: c.now().Add(ttl),
	}
}

// Get retrieves an item from the cache
func (c *Cache) Get(key string) (interface{}, bool) {

	logger := log.GetLogger()
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, found := c.items[key]
	if !found {
		logger.Debug(fmt.Sprint("Cache not found for key: ", key))
		return nil, false
	}
	if !c.now().Before(item.Expiration) {
		logger.Debug(fmt.Sprint("Cache expired for key: ", key))
		return nil, false
	}

	return item.Value, true
}

// Delete removes an item from the cache
func (c *Cache) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
}

// Keys returns the keys of all live items in sorted order.
func (c *Cache) Keys() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := c.now()
	keys := make([]string, 0, len(c.items))
	for key, item := range c.items {
		if now.Before(item.Expiration) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Purge drops every expired item and returns how many were removed.
func (c *Cache) Purge() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	removed := 0
	for key, item := range c.items {
		if !now.Before(item.Expiration) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}
